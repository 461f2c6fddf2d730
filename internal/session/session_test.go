package session

import (
	"context"
	"sync"
	"testing"

	"github.com/brodyman30/YourFM/internal/player"
)

type fakeController struct {
	fakeVolume
	mu     sync.Mutex
	loaded []string
}

func (f *fakeController) Load(uris []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append([]string(nil), uris...)
	return nil
}

func (f *fakeController) SetPaused(bool) error { return nil }

func (f *fakeController) Snapshot() (player.Snapshot, error) {
	return player.Snapshot{}, nil
}

type fakeTrackSource struct {
	tracks []player.Track
}

func (f *fakeTrackSource) Tracks(context.Context) ([]player.Track, error) {
	return f.tracks, nil
}

func TestSessionLoadQueueHandsURIsToPlayer(t *testing.T) {
	ctrl := &fakeController{}
	s := New(Config{Threshold: 3, Timing: fastTiming()},
		ctrl, &fakeTrackSource{tracks: testTracks()}, &fakeSource{}, &fakeClips{auto: true})

	if err := s.LoadQueue(context.Background()); err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	if len(ctrl.loaded) != 3 || ctrl.loaded[0] != "spotify:track:a" {
		t.Errorf("player got uris %v", ctrl.loaded)
	}
}

func TestSessionObserveDrivesSchedulerAndBumper(t *testing.T) {
	ctrl := &fakeController{}
	clips := &fakeClips{auto: true}
	s := New(Config{
		StationID: "s1",
		Topics:    []string{"tide times"},
		Threshold: 2,
		Timing:    fastTiming(),
	}, ctrl, &fakeTrackSource{tracks: testTracks()}, &fakeSource{}, clips)
	s.ctx = context.Background()

	if err := s.LoadQueue(context.Background()); err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}

	// Mid-track snapshot: cursor moves, nothing completes.
	s.Observe(snapshotPlaying("spotify:track:a", "Alpha", "The As", 60000))
	if c := s.Cursor(); c.Index != 0 || !c.Playing {
		t.Fatalf("cursor = %+v; want index 0, playing", c)
	}

	// First rollover: one completion, below threshold.
	roll1 := snapshotPlaying("spotify:track:b", "Beta", "The Bs", 30)
	roll1.Recent = []player.Track{{URI: "spotify:track:a", Name: "Alpha", Artist: "The As"}}
	s.Observe(roll1)
	if clips.playCount() != 0 {
		t.Fatal("bumper fired below threshold")
	}

	// Second rollover hits the threshold and fires.
	roll2 := snapshotPlaying("spotify:track:c", "Gamma", "The Cs", 30)
	roll2.Recent = []player.Track{
		{URI: "spotify:track:a", Name: "Alpha", Artist: "The As"},
		{URI: "spotify:track:b", Name: "Beta", Artist: "The Bs"},
	}
	s.Observe(roll2)

	waitFor(t, func() bool { return clips.playCount() == 1 }, "bumper to play")
	waitFor(t, func() bool { return !s.BumperActive() }, "bumper to finish")

	// Volume choreography ran against the player: duck first, full last.
	calls := ctrl.fakeVolume.snapshot()
	if len(calls) < 2 || calls[0] != 0.15 || calls[len(calls)-1] != 1.0 {
		t.Errorf("volume calls = %v; want duck then restore to full", calls)
	}

	s.Stop()
}

func TestSessionObserveDuplicateSnapshotsAreHarmless(t *testing.T) {
	ctrl := &fakeController{}
	clips := &fakeClips{auto: true}
	s := New(Config{Topics: []string{"news"}, Threshold: 5, Timing: fastTiming()},
		ctrl, &fakeTrackSource{tracks: testTracks()}, &fakeSource{}, clips)
	s.ctx = context.Background()

	if err := s.LoadQueue(context.Background()); err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}

	roll := snapshotPlaying("spotify:track:b", "Beta", "The Bs", 10)
	roll.Recent = []player.Track{{URI: "spotify:track:a", Name: "Alpha", Artist: "The As"}}

	// Push and poll deliver the same state change; only one completion
	// may be counted.
	s.Observe(roll)
	s.Observe(roll)
	s.Observe(roll)

	s.mu.Lock()
	count := s.sched.Count()
	s.mu.Unlock()
	if count != 1 {
		t.Errorf("scheduler count = %d after duplicate snapshots; want 1", count)
	}
}
