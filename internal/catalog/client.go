// Package catalog talks to the remote music catalog (Spotify Web API):
// artist/genre lookups for the station editor, track pools for the
// mixer, and the Connect player surface the session engine drives.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBase = "https://api.spotify.com/v1"

// TokenFunc hands back a live access token for each request, so the
// client never caches a token across a refresh.
type TokenFunc func(ctx context.Context) (string, error)

// Artist is a catalog artist as the editor UI sees it.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Image      string   `json:"image,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Popularity int      `json:"popularity,omitempty"`
}

// Track is one playable catalog entry.
type Track struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	ArtistID    string `json:"artist_id"`
	Album       string `json:"album"`
	Image       string `json:"image,omitempty"`
	DurationMS  int    `json:"duration_ms"`
	IsDiscovery bool   `json:"is_discovery"`
}

type Client struct {
	http  *http.Client
	token TokenFunc
}

func NewClient(token TokenFunc) *Client {
	return &Client{
		http:  &http.Client{Timeout: 10 * time.Second},
		token: token,
	}
}

// do issues an authorized request and decodes the JSON body into out
// (when out is non-nil). 204s decode into nothing.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out interface{}) error {
	tok, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("catalog token: %w", err)
	}

	u := apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	return c.do(ctx, http.MethodPut, path, query, body, nil)
}

// apiTrack is the wire shape shared by several endpoints.
type apiTrack struct {
	URI     string `json:"uri"`
	Name    string `json:"name"`
	Artists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	DurationMS int `json:"duration_ms"`
}

func (t apiTrack) toTrack() Track {
	out := Track{
		URI:        t.URI,
		Name:       t.Name,
		Album:      t.Album.Name,
		DurationMS: t.DurationMS,
	}
	if len(t.Artists) > 0 {
		out.Artist = t.Artists[0].Name
		out.ArtistID = t.Artists[0].ID
	}
	if len(t.Album.Images) > 0 {
		out.Image = t.Album.Images[0].URL
	}
	return out
}
