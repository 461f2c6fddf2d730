package player

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"

	"github.com/brodyman30/YourFM/internal/bumper"
)

// SpeakerPlayer plays bumper clips through the local audio device while
// the music widget sits ducked. Spoken audio never routes through the
// widget itself.
type SpeakerPlayer struct {
	mu       sync.Mutex
	initOnce sync.Once
	initErr  error
	rate     beep.SampleRate
}

func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{}
}

// Play decodes the clip and starts it; onDone fires exactly once when
// the clip's audio ends.
func (p *SpeakerPlayer) Play(clip *bumper.Clip, onDone func()) error {
	streamer, format, err := mp3.Decode(nopReadSeekCloser{bytes.NewReader(clip.Audio)})
	if err != nil {
		return fmt.Errorf("decode bumper clip: %w", err)
	}

	p.initOnce.Do(func() {
		p.rate = format.SampleRate
		p.initErr = speaker.Init(p.rate, p.rate.N(time.Second/10))
	})
	if p.initErr != nil {
		streamer.Close()
		return fmt.Errorf("speaker init: %w", p.initErr)
	}

	var voice beep.Streamer = streamer
	if format.SampleRate != p.rate {
		voice = beep.Resample(4, format.SampleRate, p.rate, streamer)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Play(beep.Seq(voice, beep.Callback(func() {
		streamer.Close()
		onDone()
	})))
	return nil
}

type nopReadSeekCloser struct {
	io.ReadSeeker
}

func (nopReadSeekCloser) Close() error { return nil }
