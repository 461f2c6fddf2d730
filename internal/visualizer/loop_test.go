package visualizer

import (
	"math"
	"testing"
)

type stubView struct{ playing bool }

func (s *stubView) Playing() bool { return s.playing }

func stubFeatures(f Features, ok bool) FeatureFunc {
	return func() (Features, bool) { return f, ok }
}

func TestBeatPulsePeaksOncePerBeat(t *testing.T) {
	// 120 BPM: period 0.5s. Trough at the period boundary, peak halfway.
	if p := beatPulse(0, 120); p > 0.001 {
		t.Errorf("pulse at beat boundary = %f; want ~0", p)
	}
	if p := beatPulse(0.25, 120); math.Abs(p-1.0) > 0.001 {
		t.Errorf("pulse at half period = %f; want ~1", p)
	}
	// Zero tempo must not divide by zero; falls back to 120.
	if p := beatPulse(0.25, 0); math.Abs(p-1.0) > 0.001 {
		t.Errorf("pulse with zero tempo = %f; want fallback to 120bpm", p)
	}
}

func TestBarTargetsStayInRange(t *testing.T) {
	out := make([]float64, barCount)
	feats := Features{Tempo: 128, Energy: 95, Danceability: 90}

	for _, elapsed := range []float64{0, 0.1, 0.73, 5.5, 60.0} {
		barTargets(out, elapsed, feats)
		for i, h := range out {
			if h < baseline || h > 1.0 {
				t.Fatalf("bar %d at t=%.2f out of range: %f", i, elapsed, h)
			}
		}
	}
}

func TestAdvancePlayingRisesAboveBaseline(t *testing.T) {
	l := NewLoop(nil, &stubView{playing: true},
		stubFeatures(Features{Tempo: 120, Energy: 80, Danceability: 70}, true), 60)

	var frame Frame
	for i := 0; i < 30; i++ {
		frame = l.advance(float64(i) / 60.0)
	}

	max := 0.0
	for _, h := range frame.Bars {
		if h > max {
			max = h
		}
	}
	if max <= baseline {
		t.Errorf("bars never rose above baseline while playing: max %f", max)
	}
	if len(frame.Bars) != barCount || len(frame.Wave) != waveSamples {
		t.Errorf("frame shape = %d bars, %d samples", len(frame.Bars), len(frame.Wave))
	}
}

func TestAdvancePausedDecaysToBaseline(t *testing.T) {
	l := NewLoop(nil, &stubView{playing: true},
		stubFeatures(Features{Tempo: 120, Energy: 100, Danceability: 100}, true), 60)

	// Pump the bars up, then pause.
	view := &stubView{playing: true}
	l.view = view
	for i := 0; i < 30; i++ {
		l.advance(float64(i) / 60.0)
	}
	view.playing = false

	var frame Frame
	for i := 30; i < 200; i++ {
		frame = l.advance(float64(i) / 60.0)
	}

	if frame.Playing {
		t.Error("frame still flagged playing after pause")
	}
	for i, h := range frame.Bars {
		if math.Abs(h-baseline) > 0.01 {
			t.Errorf("bar %d did not decay to baseline: %f", i, h)
		}
	}
	for i, v := range frame.Wave {
		if v != 0 {
			t.Errorf("wave sample %d not flat while paused: %f", i, v)
			break
		}
	}
}

func TestAdvanceWithoutFeaturesFallsBackToSimulation(t *testing.T) {
	l := NewLoop(nil, &stubView{playing: true}, stubFeatures(Features{}, false), 60)

	frame := l.advance(0.37)

	// No features: bars sit at baseline, the simulated wave carries the
	// motion.
	moving := false
	for _, v := range frame.Wave {
		if v != 0 {
			moving = true
			break
		}
	}
	if !moving {
		t.Error("simulated wave is flat while playing")
	}
}

func TestFrameBuffersAreCopies(t *testing.T) {
	l := NewLoop(nil, &stubView{playing: true},
		stubFeatures(Features{Tempo: 120, Energy: 50, Danceability: 50}, true), 60)

	a := l.advance(0.1)
	a.Bars[0] = 99
	b := l.advance(0.1)

	if b.Bars[0] == 99 {
		t.Error("frame shares the loop's internal bar buffer")
	}
}
