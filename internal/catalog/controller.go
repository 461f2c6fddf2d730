package catalog

import (
	"context"

	"github.com/brodyman30/YourFM/internal/player"
)

// Connect wraps the Client's remote-control endpoints behind the
// player.Controller contract the session engine drives.
type Connect struct {
	api      *Client
	deviceID string
	ctx      context.Context
}

func NewConnect(ctx context.Context, api *Client, deviceID string) *Connect {
	return &Connect{api: api, deviceID: deviceID, ctx: ctx}
}

func (s *Connect) Load(uris []string) error {
	return s.api.StartPlayback(s.ctx, s.deviceID, uris)
}

func (s *Connect) SetPaused(paused bool) error {
	if paused {
		return s.api.PausePlayback(s.ctx)
	}
	return s.api.ResumePlayback(s.ctx)
}

func (s *Connect) SetVolume(fraction float64) error {
	return s.api.SetPlayerVolume(s.ctx, fraction)
}

func (s *Connect) Snapshot() (player.Snapshot, error) {
	return s.api.PlayerSnapshot(s.ctx)
}
