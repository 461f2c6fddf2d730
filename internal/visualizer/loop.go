package visualizer

import (
	"context"
	"sync"
	"time"
)

// PlaybackView is the one bit of session state the loop reads each
// frame.
type PlaybackView interface {
	Playing() bool
}

// FeatureFunc supplies audio features for the current track; ok=false
// means none are available and the loop falls back to simulation.
type FeatureFunc func() (Features, bool)

// Loop runs the per-frame render callback. It must be stopped when the
// session ends; a leaked loop is a leaked per-frame timer.
type Loop struct {
	surface  Surface
	view     PlaybackView
	features FeatureFunc
	rate     int

	mu    sync.Mutex
	bars  []float64
	wave  []float64
	start time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoop(surface Surface, view PlaybackView, features FeatureFunc, frameRate int) *Loop {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &Loop{
		surface:  surface,
		view:     view,
		features: features,
		rate:     frameRate,
		bars:     make([]float64, barCount),
		wave:     make([]float64, waveSamples),
	}
}

// Start begins the frame loop. Frames tick at the configured rate
// until Stop or context cancellation.
func (l *Loop) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	l.start = time.Now()

	tick := time.NewTicker(time.Second / time.Duration(l.rate))
	go func() {
		defer tick.Stop()
		defer close(l.done)
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tick.C:
				l.step(now.Sub(l.start).Seconds())
			}
		}
	}()
}

// Stop cancels the loop and waits for the final frame to finish, so no
// render callback survives session teardown.
func (l *Loop) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
}

func (l *Loop) step(elapsed float64) {
	frame := l.advance(elapsed)
	if l.surface != nil {
		l.surface.Render(frame)
	}
}

// advance computes one frame of state. Split from step so tests can
// drive frames without a ticker.
func (l *Loop) advance(elapsed float64) Frame {
	l.mu.Lock()
	defer l.mu.Unlock()

	playing := l.view != nil && l.view.Playing()

	var feats Features
	haveFeats := false
	if l.features != nil {
		feats, haveFeats = l.features()
	}

	targets := make([]float64, barCount)
	if playing && haveFeats {
		barTargets(targets, elapsed, feats)
	} else {
		// Paused or featureless: decay to the flat baseline.
		for i := range targets {
			targets[i] = baseline
		}
	}
	for i := range l.bars {
		l.bars[i] += blend * (targets[i] - l.bars[i])
	}

	simWave(l.wave, elapsed, playing)

	frame := Frame{
		Playing: playing,
		Bars:    append([]float64(nil), l.bars...),
		Wave:    append([]float64(nil), l.wave...),
	}
	return frame
}
