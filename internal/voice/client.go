// Package voice wraps the speech-synthesis service (ElevenLabs): the
// user's custom voice catalog and text-to-speech rendering for bumpers.
package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiBase = "https://api.elevenlabs.io/v1"

// Info describes one selectable voice.
type Info struct {
	VoiceID     string `json:"voice_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

type Client struct {
	apiKey string
	model  string
	http   *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "eleven_turbo_v2_5"
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Voices lists the user's own voices. Premade library voices are
// filtered out; only cloned/generated/professional ones belong in a
// station's voice picker.
func (c *Client) Voices(ctx context.Context) ([]Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var result struct {
		Voices []struct {
			VoiceID     string `json:"voice_id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Category    string `json:"category"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var voices []Info
	for _, v := range result.Voices {
		switch v.Category {
		case "cloned", "generated", "professional":
			voices = append(voices, Info{
				VoiceID:     v.VoiceID,
				Name:        v.Name,
				Description: v.Description,
				Category:    v.Category,
			})
		}
	}
	return voices, nil
}

// Synthesize renders text to MP3 bytes with settings tuned for an
// energetic radio delivery.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	payload := map[string]interface{}{
		"text":     text,
		"model_id": c.model,
		"voice_settings": map[string]interface{}{
			"stability":         0.4, // lower = more expressive
			"similarity_boost":  0.8,
			"style":             0.6,
			"use_speaker_boost": true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+"/text-to-speech/"+voiceID, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
