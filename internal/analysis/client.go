// Package analysis fetches audio features (tempo/energy/danceability)
// for the feature-driven visualizer. Every failure path returns the
// defaults: the visualizer degrades, never the session.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const apiBase = "https://soundstat.info/api/v1"

// Features of one analyzed track. Energy and Danceability are 0–100.
type Features struct {
	Tempo        float64 `json:"tempo"`
	Energy       int     `json:"energy"`
	Danceability int     `json:"danceability"`
}

// Defaults when analysis is unavailable: a plausible mid-energy track.
func Defaults() Features {
	return Features{Tempo: 120, Energy: 60, Danceability: 60}
}

type Client struct {
	apiKey string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// TrackFeatures resolves a (song, artist) pair in two steps: search for
// the track id, then fetch its analysis.
func (c *Client) TrackFeatures(ctx context.Context, song, artist string) Features {
	id, err := c.search(ctx, song, artist)
	if err != nil {
		log.Printf("⚠️ Analysis search failed for %q: %v", song, err)
		return Defaults()
	}

	feats, err := c.analysis(ctx, id)
	if err != nil {
		log.Printf("⚠️ Analysis fetch failed for %q: %v", song, err)
		return Defaults()
	}
	return feats
}

func (c *Client) search(ctx context.Context, song, artist string) (string, error) {
	payload := fmt.Sprintf(`{"artist":%q,"track":%q,"limit":1}`, artist, song)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+"/tracks/search", strings.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var result struct {
		TrackIDs []string `json:"track_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.TrackIDs) == 0 {
		return "", fmt.Errorf("no match")
	}
	return result.TrackIDs[0], nil
}

func (c *Client) analysis(ctx context.Context, trackID string) (Features, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		apiBase+"/track/"+trackID, nil)
	if err != nil {
		return Features{}, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Features{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Features{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var result struct {
		Tempo struct {
			Value float64 `json:"value"`
		} `json:"tempo"`
		Energy struct {
			Value float64 `json:"value"`
		} `json:"energy"`
		Danceability struct {
			Value float64 `json:"value"`
		} `json:"danceability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Features{}, err
	}

	feats := Features{
		Tempo:        result.Tempo.Value,
		Energy:       int(result.Energy.Value * 100),
		Danceability: int(result.Danceability.Value * 100),
	}
	if feats.Tempo <= 0 {
		feats.Tempo = 120
	}
	return feats, nil
}
