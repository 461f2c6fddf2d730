package session

import "github.com/brodyman30/YourFM/internal/player"

// Cursor is the tracker's derived view of the external player. It is
// written only by the tracker; UI and API code read copies.
type Cursor struct {
	Index   int // -1 until the current track is located in the queue
	URI     string
	Name    string
	Artist  string
	ArtURL  string
	Playing bool
}

// completionEpsilonMS: a snapshot this close to the start of the
// timeline counts as "just rolled over to a new track".
const completionEpsilonMS = 250

// reconcile merges one raw observation into the previous cursor.
// It is a pure function on purpose: push notifications and the poll
// feed the exact same path, so out-of-order and duplicate observations
// collapse into no-ops here.
func reconcile(prev Cursor, obs player.Snapshot, q *Queue) Cursor {
	next := prev
	// The play flag drives the visualizer every frame and must never
	// lag, so it updates independent of track identity.
	next.Playing = !obs.Paused

	uri := obs.Current.URI
	if uri == "" || uri == prev.URI {
		return next // duplicate or empty observation: idempotent no-op
	}

	next.URI = uri
	// Display metadata comes from the observation itself, never a
	// re-fetch.
	next.Name = obs.Current.Name
	next.Artist = obs.Current.Artist
	next.ArtURL = obs.Current.ArtURL

	if q != nil {
		if i, ok := q.IndexByURI(uri); ok {
			next.Index = i
		} else if i, ok := q.IndexByTitleArtist(obs.Current.Name, obs.Current.Artist); ok {
			next.Index = i
		}
		// Neither match: the widget is still the source of truth for
		// audio, so the index simply doesn't advance.
	}
	return next
}

// Tracker reconciles the player's pushed and polled state into a single
// authoritative cursor and detects track-completion edges.
type Tracker struct {
	cursor        Cursor
	lastCompleted string // URI of the last completion edge already processed
}

func NewTracker() *Tracker {
	return &Tracker{cursor: Cursor{Index: -1}}
}

func (t *Tracker) Cursor() Cursor {
	return t.cursor
}

// Observe folds one snapshot into the cursor and returns the track that
// just completed, if this observation is a fresh completion edge.
// bumperActive suppresses edge detection while a spoken segment owns
// the player.
func (t *Tracker) Observe(obs player.Snapshot, q *Queue, bumperActive bool) (Cursor, *player.Track) {
	t.cursor = reconcile(t.cursor, obs, q)

	if bumperActive {
		return t.cursor, nil
	}
	if obs.PositionMS > completionEpsilonMS || len(obs.Recent) == 0 {
		return t.cursor, nil
	}

	done := obs.Recent[len(obs.Recent)-1]
	if done.URI == "" || done.URI == t.lastCompleted {
		// The same zero-position notification can arrive twice
		// (push + poll); process each completed track once.
		return t.cursor, nil
	}
	t.lastCompleted = done.URI
	return t.cursor, &done
}
