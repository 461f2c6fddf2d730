package session

import (
	"testing"

	"github.com/brodyman30/YourFM/internal/player"
)

func TestSchedulerFiresAtThreshold(t *testing.T) {
	q, _ := NewQueue(testTracks())
	s := NewScheduler(3)
	topics := []string{"the local shark population"}

	tracks := testTracks()
	if f := s.TrackCompleted(tracks[0], q, topics); f != nil {
		t.Fatal("fired after 1 completion")
	}
	if f := s.TrackCompleted(tracks[1], q, topics); f != nil {
		t.Fatal("fired after 2 completions")
	}

	f := s.TrackCompleted(tracks[1], q, topics)
	if f == nil {
		t.Fatal("did not fire after 3 completions")
	}
	if f.Current.URI != "spotify:track:b" {
		t.Errorf("firing current = %s; want b", f.Current.URI)
	}
	if !f.HasNext || f.Next.URI != "spotify:track:c" {
		t.Errorf("firing next = %+v; want track c", f.Next)
	}
	if s.Count() != 0 {
		t.Errorf("count = %d after firing; want 0", s.Count())
	}
}

func TestSchedulerLastTrackHasNoNext(t *testing.T) {
	q, _ := NewQueue(testTracks())
	s := NewScheduler(1)
	last := testTracks()[2]

	f := s.TrackCompleted(last, q, []string{"surf report"})
	if f == nil {
		t.Fatal("expected firing")
	}
	if f.HasNext {
		t.Errorf("last queue entry reported a next track: %+v", f.Next)
	}
}

func TestSchedulerZeroTopicsNeverFires(t *testing.T) {
	q, _ := NewQueue(testTracks())
	s := NewScheduler(2)
	track := testTracks()[0]

	for i := 0; i < 6; i++ {
		if f := s.TrackCompleted(track, q, nil); f != nil {
			t.Fatalf("fired on completion %d with no topics", i+1)
		}
	}
	// The counter keeps growing; it just never trips anything.
	if s.Count() != 6 {
		t.Errorf("count = %d; want 6", s.Count())
	}
}

func TestSchedulerUnresolvableTrackHoldsCount(t *testing.T) {
	q, _ := NewQueue(testTracks())
	s := NewScheduler(2)
	topics := []string{"weather"}
	stranger := player.Track{URI: "spotify:track:offqueue", Name: "Stray", Artist: "Nobody"}

	s.TrackCompleted(testTracks()[0], q, topics)
	if f := s.TrackCompleted(stranger, q, topics); f != nil {
		t.Fatal("fired on a track that is not in the queue")
	}
	if s.Count() != 2 {
		t.Errorf("count = %d; want 2 (held, not reset)", s.Count())
	}

	// Next resolvable edge fires immediately.
	if f := s.TrackCompleted(testTracks()[1], q, topics); f == nil {
		t.Error("expected firing on the next resolvable completion")
	}
}

func TestSchedulerResolvesByTitleArtist(t *testing.T) {
	q, _ := NewQueue(testTracks())
	s := NewScheduler(1)

	relinked := player.Track{URI: "spotify:track:a-alt", Name: "alpha", Artist: "the as"}
	f := s.TrackCompleted(relinked, q, []string{"news"})
	if f == nil {
		t.Fatal("expected firing via title/artist fallback")
	}
	if f.Current.URI != "spotify:track:a" {
		t.Errorf("firing current = %s; want canonical queue entry a", f.Current.URI)
	}
}
