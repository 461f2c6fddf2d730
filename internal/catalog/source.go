package catalog

import (
	"context"

	"github.com/brodyman30/YourFM/internal/player"
)

// StationSource feeds the session engine a fresh mix for one station's
// pinned artists on every call.
type StationSource struct {
	mixer *Mixer
	ids   []string
	names []string
}

func NewStationSource(mixer *Mixer, artistIDs, artistNames []string) *StationSource {
	return &StationSource{mixer: mixer, ids: artistIDs, names: artistNames}
}

func (s *StationSource) Tracks(ctx context.Context) ([]player.Track, error) {
	mixed, err := s.mixer.Mix(ctx, s.ids, s.names)
	if err != nil {
		return nil, err
	}
	out := make([]player.Track, 0, len(mixed))
	for _, t := range mixed {
		out = append(out, player.Track{
			URI:        t.URI,
			Name:       t.Name,
			Artist:     t.Artist,
			ArtURL:     t.Image,
			DurationMS: t.DurationMS,
		})
	}
	return out, nil
}
