package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/brodyman30/YourFM/internal/bumper"
)

// State of the bumper lifecycle machine.
type State int32

const (
	StateIdle State = iota
	StateDucking
	StateRequesting
	StatePlaying
	StateRestoring
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDucking:
		return "ducking"
	case StateRequesting:
		return "requesting"
	case StatePlaying:
		return "playing"
	case StateRestoring:
		return "restoring"
	}
	return "unknown"
}

// Timing collects the fixed delays of the duck/restore choreography.
// Tests shrink these instead of faking the clock.
type Timing struct {
	DuckVolume   float64
	DuckDelay    time.Duration
	SettleDelay  time.Duration
	FadeStep     float64
	FadeInterval time.Duration
	PollInterval time.Duration
	FrameRate    int
}

func DefaultTiming() Timing {
	return Timing{
		DuckVolume:   0.15,
		DuckDelay:    500 * time.Millisecond,
		SettleDelay:  100 * time.Millisecond,
		FadeStep:     0.08,
		FadeInterval: 100 * time.Millisecond,
		PollInterval: time.Second,
		FrameRate:    60,
	}
}

// BumperSource produces a playable clip for one firing. Failure is a
// single opaque error; no partial responses.
type BumperSource interface {
	Generate(ctx context.Context, req bumper.Request) (*bumper.Clip, error)
}

// ClipPlayer plays a produced clip outside the music widget and calls
// onDone exactly once when the clip's audio ends.
type ClipPlayer interface {
	Play(clip *bumper.Clip, onDone func()) error
}

// volumeControl is the one slice of the widget the lifecycle touches.
// While a bumper is live, the lifecycle is the only authority over it.
type volumeControl interface {
	SetVolume(fraction float64) error
}

// Lifecycle owns the duck → request → play → restore machine for a
// single bumper occurrence. Only one occurrence can be live at a time;
// triggers while non-idle are silent no-ops.
type Lifecycle struct {
	mu     sync.Mutex
	state  State
	player volumeControl
	source BumperSource
	clips  ClipPlayer
	timing Timing
	timers *timerSet
	notify func(error)
}

func NewLifecycle(vc volumeControl, source BumperSource, clips ClipPlayer, timing Timing, timers *timerSet, notify func(error)) *Lifecycle {
	if notify == nil {
		notify = func(error) {}
	}
	return &Lifecycle{
		state:  StateIdle,
		player: vc,
		source: source,
		clips:  clips,
		timing: timing,
		timers: timers,
		notify: notify,
	}
}

// Active reports whether a bumper occurrence is live in any form.
func (l *Lifecycle) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state != StateIdle
}

func (l *Lifecycle) StateNow() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Trigger starts one occurrence. Returns false if one is already live
// (second line of defense behind the scheduler's counter reset).
func (l *Lifecycle) Trigger(ctx context.Context, req bumper.Request) bool {
	l.mu.Lock()
	if l.state != StateIdle {
		l.mu.Unlock()
		return false
	}
	l.state = StateDucking
	l.mu.Unlock()

	// Duck first, before any network round-trip, so the volume drop is
	// perceived as instantaneous.
	if err := l.player.SetVolume(l.timing.DuckVolume); err != nil {
		l.fail(err)
		return true
	}

	// Let the duck register before speech begins.
	if !l.timers.afterFunc(l.timing.DuckDelay, func() {
		l.beginRequest(ctx, req)
	}) {
		l.fail(context.Canceled)
	}
	return true
}

func (l *Lifecycle) beginRequest(ctx context.Context, req bumper.Request) {
	if !l.advance(StateDucking, StateRequesting) {
		return
	}
	go func() {
		clip, err := l.source.Generate(ctx, req)
		if err != nil {
			bumperFailures.Inc()
			l.fail(err)
			return
		}
		// Short settle so the audio element has a head start buffering.
		if !l.timers.afterFunc(l.timing.SettleDelay, func() {
			l.play(clip)
		}) {
			l.fail(context.Canceled)
		}
	}()
}

func (l *Lifecycle) play(clip *bumper.Clip) {
	if !l.advance(StateRequesting, StatePlaying) {
		return
	}
	log.Printf("🎙️  Bumper: %q", clip.Text)
	if err := l.clips.Play(clip, l.clipEnded); err != nil {
		l.fail(err)
	}
}

func (l *Lifecycle) clipEnded() {
	if !l.advance(StatePlaying, StateRestoring) {
		return
	}
	l.startFade()
}

// startFade ramps the widget volume back up in fixed increments until
// it clamps at full, then stops its own ticker. Session teardown stops
// it too, via the shared timer set.
func (l *Lifecycle) startFade() {
	tick, done, ok := l.timers.ticker(l.timing.FadeInterval)
	if !ok {
		l.fail(context.Canceled)
		return
	}
	go func() {
		vol := l.timing.DuckVolume
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				vol += l.timing.FadeStep
				if vol >= 1.0 {
					l.player.SetVolume(1.0)
					tick.Stop()
					l.setState(StateIdle)
					return
				}
				l.player.SetVolume(vol)
			}
		}
	}()
}

// fail aborts the occurrence: volume snaps back to full (no fade — a
// failure must never leave the music ducked) and the machine returns
// to idle so the next trigger can fire.
func (l *Lifecycle) fail(err error) {
	l.setState(StateIdle)
	if verr := l.player.SetVolume(1.0); verr != nil {
		log.Printf("⚠️ Volume restore failed: %v", verr)
	}
	if err != nil {
		log.Printf("⚠️ Bumper aborted: %v", err)
		l.notify(err)
	}
}

func (l *Lifecycle) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// advance moves from → to, or reports false if a teardown or failure
// already reset the machine.
func (l *Lifecycle) advance(from, to State) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != from {
		return false
	}
	l.state = to
	return true
}
