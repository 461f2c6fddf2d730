package session

import (
	"testing"

	"github.com/brodyman30/YourFM/internal/player"
)

func testTracks() []player.Track {
	return []player.Track{
		{URI: "spotify:track:a", Name: "Alpha", Artist: "The As"},
		{URI: "spotify:track:b", Name: "Beta", Artist: "The Bs"},
		{URI: "spotify:track:c", Name: "Gamma", Artist: "The Cs"},
	}
}

func TestNewQueueRejectsDuplicateURIs(t *testing.T) {
	tracks := testTracks()
	tracks = append(tracks, player.Track{URI: "spotify:track:a", Name: "Alpha Again"})

	if _, err := NewQueue(tracks); err == nil {
		t.Fatal("expected duplicate URI error, got nil")
	}
}

func TestQueueLookups(t *testing.T) {
	q, err := NewQueue(testTracks())
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}

	if i, ok := q.IndexByURI("spotify:track:b"); !ok || i != 1 {
		t.Errorf("IndexByURI(b) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := q.IndexByURI("spotify:track:zz"); ok {
		t.Error("IndexByURI(zz) should miss")
	}

	// Fallback match is case-insensitive on name + artist.
	if i, ok := q.IndexByTitleArtist("gamma", "the cs"); !ok || i != 2 {
		t.Errorf("IndexByTitleArtist(gamma) = %d, %v; want 2, true", i, ok)
	}
	if _, ok := q.IndexByTitleArtist("", "The As"); ok {
		t.Error("empty name must never match")
	}
	if _, ok := q.IndexByTitleArtist("Alpha", "Wrong Artist"); ok {
		t.Error("artist mismatch must not match")
	}
}

func TestQueueURIsIsACopy(t *testing.T) {
	q, err := NewQueue(testTracks())
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}

	uris := q.URIs()
	uris[0] = "mutated"

	again := q.URIs()
	if again[0] != "spotify:track:a" {
		t.Errorf("queue backing slice was mutated through URIs(): %s", again[0])
	}
}
