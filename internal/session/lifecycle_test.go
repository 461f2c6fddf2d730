package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brodyman30/YourFM/internal/bumper"
)

// fastTiming keeps the choreography real but sub-millisecond-scale so
// tests finish quickly.
func fastTiming() Timing {
	return Timing{
		DuckVolume:   0.15,
		DuckDelay:    time.Millisecond,
		SettleDelay:  time.Millisecond,
		FadeStep:     0.30,
		FadeInterval: time.Millisecond,
		PollInterval: time.Second,
	}
}

type fakeVolume struct {
	mu    sync.Mutex
	calls []float64
}

func (f *fakeVolume) SetVolume(v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, v)
	return nil
}

func (f *fakeVolume) snapshot() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.calls...)
}

type fakeSource struct {
	err   error
	block chan struct{} // when non-nil, Generate waits on it
}

func (f *fakeSource) Generate(_ context.Context, _ bumper.Request) (*bumper.Clip, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &bumper.Clip{ID: "clip-1", Text: "you're on your F M"}, nil
}

type fakeClips struct {
	mu     sync.Mutex
	played int
	onDone func()
	auto   bool // finish the clip immediately
}

func (f *fakeClips) Play(_ *bumper.Clip, onDone func()) error {
	f.mu.Lock()
	f.played++
	f.onDone = onDone
	auto := f.auto
	f.mu.Unlock()
	if auto {
		onDone()
	}
	return nil
}

func (f *fakeClips) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.played
}

func (f *fakeClips) finish() {
	f.mu.Lock()
	done := f.onDone
	f.mu.Unlock()
	done()
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestLifecycleFullRun(t *testing.T) {
	vol := &fakeVolume{}
	clips := &fakeClips{auto: true}
	timers := newTimerSet()
	defer timers.stopAll()

	l := NewLifecycle(vol, &fakeSource{}, clips, fastTiming(), timers, nil)

	if !l.Trigger(context.Background(), bumper.Request{StationID: "s1"}) {
		t.Fatal("trigger refused from idle")
	}

	// The duck is synchronous inside Trigger: the very first volume call
	// must already be the duck level.
	calls := vol.snapshot()
	if len(calls) == 0 || calls[0] != 0.15 {
		t.Fatalf("first volume call = %v; want 0.15 duck", calls)
	}

	waitFor(t, func() bool { return l.StateNow() == StateIdle && clips.playCount() == 1 }, "full run to idle")

	calls = vol.snapshot()
	if calls[len(calls)-1] != 1.0 {
		t.Errorf("final volume = %v; want 1.0", calls[len(calls)-1])
	}
	// Everything between duck and full is the fade: strictly increasing,
	// never above 1.0.
	for i := 1; i < len(calls); i++ {
		if calls[i] <= calls[i-1] {
			t.Errorf("fade not strictly increasing at %d: %v", i, calls)
			break
		}
		if calls[i] > 1.0 {
			t.Errorf("fade overshot 1.0: %v", calls)
			break
		}
	}
}

func TestLifecycleTriggerWhileActiveIsNoOp(t *testing.T) {
	vol := &fakeVolume{}
	src := &fakeSource{block: make(chan struct{})}
	clips := &fakeClips{auto: true}
	timers := newTimerSet()
	defer timers.stopAll()

	l := NewLifecycle(vol, src, clips, fastTiming(), timers, nil)

	if !l.Trigger(context.Background(), bumper.Request{}) {
		t.Fatal("first trigger refused")
	}
	if l.Trigger(context.Background(), bumper.Request{}) {
		t.Error("second trigger accepted while occurrence is live")
	}

	close(src.block)
	waitFor(t, func() bool { return l.StateNow() == StateIdle }, "occurrence to finish")

	if clips.playCount() != 1 {
		t.Errorf("played %d clips; want 1", clips.playCount())
	}
}

func TestLifecycleGenerateFailure(t *testing.T) {
	vol := &fakeVolume{}
	clips := &fakeClips{auto: true}
	timers := newTimerSet()
	defer timers.stopAll()

	var notified error
	var mu sync.Mutex
	l := NewLifecycle(vol, &fakeSource{err: errors.New("tts down")}, clips, fastTiming(), timers, func(err error) {
		mu.Lock()
		notified = err
		mu.Unlock()
	})

	l.Trigger(context.Background(), bumper.Request{})
	waitFor(t, func() bool { return l.StateNow() == StateIdle }, "failure to settle")

	calls := vol.snapshot()
	// Duck, then a hard snap to full. No fade steps on the failure path.
	if len(calls) != 2 || calls[0] != 0.15 || calls[1] != 1.0 {
		t.Errorf("volume calls = %v; want [0.15 1.0]", calls)
	}
	if clips.playCount() != 0 {
		t.Errorf("played %d clips after failed generation", clips.playCount())
	}

	mu.Lock()
	defer mu.Unlock()
	if notified == nil {
		t.Error("failure was not surfaced to the notifier")
	}

	// The machine must be reusable after a failure.
	if !l.Trigger(context.Background(), bumper.Request{}) {
		t.Error("trigger refused after failure reset")
	}
}

func TestLifecycleTeardownStopsFade(t *testing.T) {
	vol := &fakeVolume{}
	clips := &fakeClips{} // hold onDone; we fire it manually
	timers := newTimerSet()

	timing := fastTiming()
	timing.FadeInterval = time.Hour // a fade tick must never arrive on its own

	l := NewLifecycle(vol, &fakeSource{}, clips, timing, timers, nil)
	l.Trigger(context.Background(), bumper.Request{})
	waitFor(t, func() bool { return clips.playCount() == 1 }, "clip to start")

	clips.finish() // enters Restoring and arms the fade ticker
	if l.StateNow() != StateRestoring {
		t.Fatalf("state = %v; want restoring", l.StateNow())
	}

	before := len(vol.snapshot())
	timers.stopAll()
	time.Sleep(10 * time.Millisecond)

	if after := len(vol.snapshot()); after != before {
		t.Errorf("volume changed after teardown: %d -> %d calls", before, after)
	}
}
