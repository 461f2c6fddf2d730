// Package announcer writes the on-air script for a bumper: an LLM
// drafts it like a radio DJ, and a deterministic template stands in
// when the model misbehaves or is unreachable.
package announcer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brodyman30/YourFM/internal/bumper"
)

const systemPrompt = `You are a professional radio DJ. Generate ONLY the exact words you would say on air.
Rules:
- Keep it under 50 words (but shorter is fine - be natural, don't force it)
- Be energetic and conversational
- Mention the SPECIFIC song and artist that just played
- If topics are provided, share 1-2 UNIQUE interesting facts (never repeat the same facts)
- DO NOT make up facts about weather, time, news, or events
- DO NOT include instructions or meta-text
- Sound natural like a real DJ
- ALWAYS end with "on your F M, your [genre(s)] station!" or a variation like "here on your F M!"
- Write "your F M" NOT "YOURFM" for proper pronunciation
- Output ONLY what the DJ would say`

type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Script produces the spoken text for one bumper. Any model failure
// falls back to the template; a bumper always has something to say.
func (c *Client) Script(ctx context.Context, req bumper.Request) string {
	prompt := BuildPrompt(req)
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return FallbackScript(req)
	}
	text := scrub(raw)
	if !Acceptable(text) {
		return FallbackScript(req)
	}
	return text
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return result.Choices[0].Message.Content, nil
}

func scrub(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.Trim(text, `"'`)
	return strings.TrimSpace(text)
}
