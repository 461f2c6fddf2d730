package session

import (
	"testing"

	"github.com/brodyman30/YourFM/internal/player"
)

func snapshotPlaying(uri, name, artist string, posMS int) player.Snapshot {
	return player.Snapshot{
		Paused:     false,
		PositionMS: posMS,
		Current:    player.Track{URI: uri, Name: name, Artist: artist},
	}
}

func TestReconcileIdempotent(t *testing.T) {
	q, _ := NewQueue(testTracks())

	obs := snapshotPlaying("spotify:track:b", "Beta", "The Bs", 5000)
	first := reconcile(Cursor{Index: -1}, obs, q)
	second := reconcile(first, obs, q)

	if first != second {
		t.Errorf("duplicate observation changed the cursor: %+v vs %+v", first, second)
	}
	if first.Index != 1 || first.URI != "spotify:track:b" {
		t.Errorf("cursor = %+v; want index 1, uri b", first)
	}
}

func TestReconcilePlayFlagAlwaysUpdates(t *testing.T) {
	q, _ := NewQueue(testTracks())
	cur := reconcile(Cursor{Index: -1}, snapshotPlaying("spotify:track:a", "Alpha", "The As", 100), q)
	if !cur.Playing {
		t.Fatal("expected playing cursor")
	}

	// Paused snapshot with an empty current track: identity untouched,
	// play flag still flips.
	cur = reconcile(cur, player.Snapshot{Paused: true}, q)
	if cur.Playing {
		t.Error("pause observation did not update play flag")
	}
	if cur.URI != "spotify:track:a" || cur.Index != 0 {
		t.Errorf("empty observation disturbed track identity: %+v", cur)
	}
}

func TestReconcileTitleArtistFallback(t *testing.T) {
	q, _ := NewQueue(testTracks())

	// Same logical track under a re-linked URI.
	obs := snapshotPlaying("spotify:track:b-regional", "Beta", "The Bs", 3000)
	cur := reconcile(Cursor{Index: -1}, obs, q)

	if cur.Index != 1 {
		t.Errorf("fallback match index = %d; want 1", cur.Index)
	}
	if cur.URI != "spotify:track:b-regional" {
		t.Errorf("cursor must keep the observed uri, got %s", cur.URI)
	}
}

func TestReconcileUnknownTrackHoldsIndex(t *testing.T) {
	q, _ := NewQueue(testTracks())
	prev := Cursor{Index: 1, URI: "spotify:track:b", Playing: true}

	cur := reconcile(prev, snapshotPlaying("spotify:track:other", "Elsewhere", "Nobody", 0), q)
	if cur.Index != 1 {
		t.Errorf("unknown track moved index to %d; want held at 1", cur.Index)
	}
	if cur.Name != "Elsewhere" {
		t.Errorf("display metadata should follow the observation, got %q", cur.Name)
	}
}

func TestObserveCompletionEdge(t *testing.T) {
	q, _ := NewQueue(testTracks())
	tr := NewTracker()

	// Mid-track: no completion.
	if _, done := tr.Observe(snapshotPlaying("spotify:track:a", "Alpha", "The As", 60000), q, false); done != nil {
		t.Fatalf("mid-track snapshot reported completion of %s", done.URI)
	}

	// Rolled over to track b with a at the tail of history.
	snap := snapshotPlaying("spotify:track:b", "Beta", "The Bs", 40)
	snap.Recent = []player.Track{{URI: "spotify:track:a", Name: "Alpha", Artist: "The As"}}

	_, done := tr.Observe(snap, q, false)
	if done == nil || done.URI != "spotify:track:a" {
		t.Fatalf("expected completion of track a, got %+v", done)
	}

	// The poll delivers the same notification again: already processed.
	if _, dup := tr.Observe(snap, q, false); dup != nil {
		t.Errorf("duplicate completion edge reported twice: %s", dup.URI)
	}
}

func TestObserveNoEdgeCases(t *testing.T) {
	q, _ := NewQueue(testTracks())

	rollover := snapshotPlaying("spotify:track:b", "Beta", "The Bs", 40)
	rollover.Recent = []player.Track{{URI: "spotify:track:a", Name: "Alpha", Artist: "The As"}}

	t.Run("empty history", func(t *testing.T) {
		tr := NewTracker()
		snap := snapshotPlaying("spotify:track:a", "Alpha", "The As", 0)
		if _, done := tr.Observe(snap, q, false); done != nil {
			t.Error("position 0 with no history must not complete anything")
		}
	})

	t.Run("bumper active", func(t *testing.T) {
		tr := NewTracker()
		if _, done := tr.Observe(rollover, q, true); done != nil {
			t.Error("edge detection must be suppressed while a bumper is live")
		}
	})

	t.Run("past epsilon", func(t *testing.T) {
		tr := NewTracker()
		snap := rollover
		snap.PositionMS = completionEpsilonMS + 1
		if _, done := tr.Observe(snap, q, false); done != nil {
			t.Error("snapshot past the rollover window must not complete")
		}
	})
}
