package catalog

import (
	"context"
	"log"
	"strings"
)

// trackAPI is the slice of the catalog client the mixer draws from.
type trackAPI interface {
	TopTracks(ctx context.Context, artistID string) ([]Track, error)
	RelatedArtists(ctx context.Context, artistID string) ([]Artist, error)
	Recommendations(ctx context.Context, seedArtists []string, minPopularity int, targetEnergy float64) ([]Track, error)
}

// Mixer builds the station queue: mostly tracks from artists the
// listener has never picked (discovery), salted with a smaller share
// from the artists they did. The pools are rebuilt and reshuffled on
// every call so re-entering a station never replays the same mix.
type Mixer struct {
	client trackAPI

	// TargetSize is the final queue length (default 50).
	TargetSize int
	// DiscoveryFraction is the share of the queue drawn from related
	// and recommended artists (default 0.80).
	DiscoveryFraction float64
}

func NewMixer(client *Client) *Mixer {
	return &Mixer{
		client:            client,
		TargetSize:        50,
		DiscoveryFraction: 0.80,
	}
}

const (
	tracksPerSelected  = 5
	tracksPerRelated   = 6
	relatedPerArtist   = 15
	discoveryPoolCap   = 200
	recommendationRuns = 3
)

// Mix assembles the station's track list from its pinned artists.
func (m *Mixer) Mix(ctx context.Context, artistIDs []string, artistNames []string) ([]Track, error) {
	selectedIDs := make(map[string]bool, len(artistIDs))
	selectedNames := make(map[string]bool, len(artistNames))
	for _, id := range artistIDs {
		selectedIDs[id] = true
	}
	for _, name := range artistNames {
		selectedNames[strings.ToLower(name)] = true
	}

	isSelected := func(t Track) bool {
		return selectedIDs[t.ArtistID] || selectedNames[strings.ToLower(t.Artist)]
	}

	seenURIs := make(map[string]bool)
	var selectedPool, discoveryPool []Track

	add := func(pool *[]Track, t Track, discovery bool) {
		if t.URI == "" || seenURIs[t.URI] {
			return
		}
		seenURIs[t.URI] = true
		t.IsDiscovery = discovery
		*pool = append(*pool, t)
	}

	shuffled := append([]string(nil), artistIDs...)
	shuffleStrings(shuffled)
	if len(shuffled) > 10 {
		shuffled = shuffled[:10]
	}

	// Pool 1: tracks from the artists the listener actually picked.
	for _, id := range shuffled {
		tracks, err := m.client.TopTracks(ctx, id)
		if err != nil {
			log.Printf("⚠️ Top tracks failed for %s: %v", id, err)
			continue
		}
		shuffleTracks(tracks)
		for i, t := range tracks {
			if i >= tracksPerSelected {
				break
			}
			add(&selectedPool, t, false)
		}
	}

	// Pool 2: discovery via related artists.
	for _, id := range shuffled {
		if len(discoveryPool) >= discoveryPoolCap {
			break
		}
		related, err := m.client.RelatedArtists(ctx, id)
		if err != nil {
			continue
		}
		shuffleArtists(related)
		for ri, rel := range related {
			if ri >= relatedPerArtist || len(discoveryPool) >= discoveryPoolCap {
				break
			}
			if selectedIDs[rel.ID] || selectedNames[strings.ToLower(rel.Name)] {
				continue
			}
			tracks, err := m.client.TopTracks(ctx, rel.ID)
			if err != nil {
				continue
			}
			shuffleTracks(tracks)
			for i, t := range tracks {
				if i >= tracksPerRelated || len(discoveryPool) >= discoveryPoolCap {
					break
				}
				if !isSelected(t) {
					add(&discoveryPool, t, true)
				}
			}
		}
	}

	// Pool 2b: discovery via recommendations, with jittered parameters
	// so repeated loads diverge.
	for run := 0; run < recommendationRuns && len(shuffled) > 0; run++ {
		shuffleStrings(shuffled)
		recs, err := m.client.Recommendations(ctx, shuffled,
			randBetween(20, 40), randFloat(0.4, 0.8))
		if err != nil {
			log.Printf("⚠️ Recommendations failed: %v", err)
			break
		}
		for _, t := range recs {
			if !isSelected(t) {
				add(&discoveryPool, t, true)
			}
		}
	}

	return m.assemble(selectedPool, discoveryPool), nil
}

// assemble applies the discovery/selected split, filling shortfalls in
// one pool from the other, and shuffles the final order.
func (m *Mixer) assemble(selectedPool, discoveryPool []Track) []Track {
	target := m.TargetSize
	if target <= 0 {
		target = 50
	}
	wantDiscovery := int(float64(target) * m.DiscoveryFraction)
	wantSelected := target - wantDiscovery

	shuffleTracks(discoveryPool)
	shuffleTracks(selectedPool)

	discovery := take(discoveryPool, wantDiscovery)
	selected := take(selectedPool, wantSelected)

	if len(discovery) < wantDiscovery {
		selected = take(selectedPool, wantSelected+wantDiscovery-len(discovery))
	} else if len(selected) < wantSelected {
		discovery = take(discoveryPool, wantDiscovery+wantSelected-len(selected))
	}

	final := append(append([]Track(nil), discovery...), selected...)
	shuffleTracks(final)

	log.Printf("🎛️  Mix: %d discovery + %d selected = %d tracks",
		len(discovery), len(selected), len(final))
	return final
}

func take(pool []Track, n int) []Track {
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
