package session

import (
	"fmt"
	"strings"

	"github.com/brodyman30/YourFM/internal/player"
)

// Queue is the ordered track list for one station session. It is built
// wholesale when a station is opened and never mutated afterwards; a
// re-entry into the player replaces it with a fresh mix.
type Queue struct {
	tracks []player.Track
	byURI  map[string]int
}

// NewQueue copies tracks into an immutable queue. Duplicate URIs are a
// build error: the catalog mixer already dedupes, so a duplicate here
// means the caller mixed generations.
func NewQueue(tracks []player.Track) (*Queue, error) {
	q := &Queue{
		tracks: make([]player.Track, len(tracks)),
		byURI:  make(map[string]int, len(tracks)),
	}
	copy(q.tracks, tracks)
	for i, t := range q.tracks {
		if _, dup := q.byURI[t.URI]; dup {
			return nil, fmt.Errorf("duplicate track uri in queue: %s", t.URI)
		}
		q.byURI[t.URI] = i
	}
	return q, nil
}

func (q *Queue) Len() int {
	return len(q.tracks)
}

// At returns the track at index i; ok is false when out of range.
func (q *Queue) At(i int) (player.Track, bool) {
	if i < 0 || i >= len(q.tracks) {
		return player.Track{}, false
	}
	return q.tracks[i], true
}

// IndexByURI locates a track by exact URI match.
func (q *Queue) IndexByURI(uri string) (int, bool) {
	i, ok := q.byURI[uri]
	return i, ok
}

// IndexByTitleArtist is the fallback match: the same logical track can
// be queued under a different sub-identifier (regional releases,
// re-linked catalog entries), so name + primary artist is close enough.
func (q *Queue) IndexByTitleArtist(name, artist string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i, t := range q.tracks {
		if strings.EqualFold(t.Name, name) && strings.EqualFold(t.Artist, artist) {
			return i, true
		}
	}
	return 0, false
}

// URIs returns a fresh copy for handing to the external player. The
// widget gets read-only data, never our backing slice.
func (q *Queue) URIs() []string {
	uris := make([]string, len(q.tracks))
	for i, t := range q.tracks {
		uris[i] = t.URI
	}
	return uris
}
