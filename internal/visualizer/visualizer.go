// Package visualizer drives the audio-reactive display: a per-frame
// loop that either simulates a layered waveform or shapes bar heights
// from the current track's audio features.
package visualizer

import "math"

// Features are the externally supplied audio descriptors for the
// current track. Energy and Danceability are 0–100.
type Features struct {
	Tempo        float64
	Energy       int
	Danceability int
}

// Surface is wherever the frames get painted. A nil surface is legal;
// the loop keeps animating its internal state and paints nothing.
type Surface interface {
	Render(frame Frame)
}

// Frame is one rendered instant.
type Frame struct {
	Playing bool
	// Bars are smoothed heights in [0,1], feature mode.
	Bars []float64
	// Wave is the simulated waveform in [-1,1], simulation mode.
	Wave []float64
}

const (
	barCount    = 24
	waveSamples = 96
	baseline    = 0.04
	// blend is the exponential smoothing factor toward the frame's
	// target heights; keeps the bars from jittering.
	blend = 0.25
)

// simLayer is one fixed sine component of the simulated waveform.
type simLayer struct {
	amp   float64
	freq  float64
	speed float64
	phase float64
}

var simLayers = []simLayer{
	{amp: 0.55, freq: 2.0, speed: 2.4, phase: 0},
	{amp: 0.30, freq: 5.0, speed: -3.1, phase: math.Pi / 3},
	{amp: 0.15, freq: 11.0, speed: 5.7, phase: math.Pi / 7},
}

// simWave composes the layered sines at elapsed seconds t. Paused
// playback freezes to a flat baseline.
func simWave(out []float64, t float64, playing bool) {
	if !playing {
		for i := range out {
			out[i] = 0
		}
		return
	}
	for i := range out {
		x := float64(i) / float64(len(out))
		var v float64
		for _, l := range simLayers {
			v += l.amp * math.Sin(2*math.Pi*l.freq*x+l.speed*t+l.phase)
		}
		out[i] = v
	}
}

// beatPulse maps elapsed time onto a smooth 0..1 envelope that peaks
// once per beat (period = 60/tempo seconds).
func beatPulse(t, tempo float64) float64 {
	if tempo <= 0 {
		tempo = 120
	}
	period := 60.0 / tempo
	phase := math.Mod(t, period) / period
	return 0.5 * (1 - math.Cos(2*math.Pi*phase))
}

// barTargets computes the per-bar target heights for feature mode.
// Bass, mid, and treble regions weight energy, danceability, and the
// beat pulse differently; a slow per-bar sine keeps neighbours from
// moving in lockstep.
func barTargets(out []float64, t float64, f Features) {
	energy := float64(f.Energy) / 100
	dance := float64(f.Danceability) / 100
	pulse := beatPulse(t, f.Tempo)

	n := len(out)
	for i := range out {
		var h float64
		switch {
		case i < n/3: // bass: rides the beat hardest
			h = 0.45*energy + 0.45*pulse + 0.10*dance
		case i < 2*n/3: // mids: mostly sustained energy
			h = 0.55*energy + 0.25*dance + 0.20*pulse
		default: // treble: danceability shimmer
			h = 0.40*dance + 0.20*energy + 0.40*pulse
		}
		wobble := 0.80 + 0.20*math.Sin(3.0*t+1.7*float64(i))
		h *= wobble
		out[i] = clamp(h, baseline, 1.0)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
