package catalog

import (
	"context"
	"net/url"
	"strconv"

	"github.com/brodyman30/YourFM/internal/player"
)

// Connect endpoints: the catalog's remote-control surface over the
// listener's active playback device. This is what backs the
// player.Controller adapter the session engine drives.

// PlayerSnapshot polls the live playback state and a short history of
// previously played items (most recent last).
func (c *Client) PlayerSnapshot(ctx context.Context) (player.Snapshot, error) {
	var current struct {
		IsPlaying  bool      `json:"is_playing"`
		ProgressMS int       `json:"progress_ms"`
		Item       *apiTrack `json:"item"`
	}
	if err := c.get(ctx, "/me/player", nil, &current); err != nil {
		return player.Snapshot{}, err
	}

	snap := player.Snapshot{
		Paused:     !current.IsPlaying,
		PositionMS: current.ProgressMS,
	}
	if current.Item != nil {
		t := current.Item.toTrack()
		snap.Current = player.Track{
			URI:        t.URI,
			Name:       t.Name,
			Artist:     t.Artist,
			ArtURL:     t.Image,
			DurationMS: t.DurationMS,
		}
	}

	params := url.Values{}
	params.Set("limit", "5")
	var recent struct {
		Items []struct {
			Track apiTrack `json:"track"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/me/player/recently-played", params, &recent); err == nil {
		// The endpoint lists newest first; the snapshot contract wants
		// most recent last.
		for i := len(recent.Items) - 1; i >= 0; i-- {
			t := recent.Items[i].Track.toTrack()
			snap.Recent = append(snap.Recent, player.Track{
				URI:    t.URI,
				Name:   t.Name,
				Artist: t.Artist,
				ArtURL: t.Image,
			})
		}
	}
	return snap, nil
}

// StartPlayback hands the device a URI list and starts from the top.
func (c *Client) StartPlayback(ctx context.Context, deviceID string, uris []string) error {
	params := url.Values{}
	if deviceID != "" {
		params.Set("device_id", deviceID)
	}
	payload := map[string]interface{}{"uris": uris}
	return c.put(ctx, "/me/player/play", params, payload)
}

func (c *Client) PausePlayback(ctx context.Context) error {
	return c.put(ctx, "/me/player/pause", nil, nil)
}

func (c *Client) ResumePlayback(ctx context.Context) error {
	return c.put(ctx, "/me/player/play", nil, nil)
}

// SetPlayerVolume takes a fraction in [0,1]; the wire wants percent.
func (c *Client) SetPlayerVolume(ctx context.Context, fraction float64) error {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	params := url.Values{}
	params.Set("volume_percent", strconv.Itoa(int(fraction*100+0.5)))
	return c.put(ctx, "/me/player/volume", params, nil)
}
