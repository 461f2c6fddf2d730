// Package session is the playback orchestration engine: it reconciles
// the external player's pushed and polled state into one cursor,
// decides when a spoken bumper interrupts the music, and runs the
// duck/restore choreography around it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/brodyman30/YourFM/internal/bumper"
	"github.com/brodyman30/YourFM/internal/player"
)

// TrackSource supplies a freshly randomized mix for the station. The
// engine requests a new list every time a station is opened and never
// caches across sessions.
type TrackSource interface {
	Tracks(ctx context.Context) ([]player.Track, error)
}

// Config is the per-station session setup.
type Config struct {
	StationID string
	Topics    []string
	Genres    []string
	VoiceID   string
	VoiceName string
	// ListenerLocation is optional client-supplied context for the
	// announcer.
	ListenerLocation string

	Threshold int
	Timing    Timing
}

// Notice is a non-fatal failure surfaced to whoever is watching the
// session; playback continues degraded.
type Notice struct {
	Stage string
	Err   error
}

// Session wires the tracker, scheduler, and bumper lifecycle around
// one station visit. Start it once, stop it once; stopping releases
// every timer, ticker, and poll the session created.
type Session struct {
	cfg    Config
	player player.Controller
	tracks TrackSource

	mu      sync.Mutex
	queue   *Queue
	tracker *Tracker
	sched   *Scheduler
	loading bool

	lifecycle *Lifecycle
	timers    *timerSet
	notices   chan Notice

	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg Config, ctrl player.Controller, tracks TrackSource, source BumperSource, clips ClipPlayer) *Session {
	if cfg.Timing == (Timing{}) {
		cfg.Timing = DefaultTiming()
	}
	s := &Session{
		cfg:     cfg,
		player:  ctrl,
		tracks:  tracks,
		tracker: NewTracker(),
		sched:   NewScheduler(cfg.Threshold),
		timers:  newTimerSet(),
		notices: make(chan Notice, 16),
	}
	s.lifecycle = NewLifecycle(ctrl, source, clips, cfg.Timing, s.timers, func(err error) {
		s.notice("bumper", err)
	})
	return s
}

// Start loads the queue into the player and begins the 1 Hz safety-net
// poll. The push path (Observe) is live immediately.
func (s *Session) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	if err := s.LoadQueue(s.ctx); err != nil {
		return err
	}

	tick, done, ok := s.timers.ticker(s.cfg.Timing.PollInterval)
	if !ok {
		return errors.New("session already stopped")
	}
	go func() {
		for {
			select {
			case <-done:
				return
			case <-s.ctx.Done():
				return
			case <-tick.C:
				snap, err := s.player.Snapshot()
				if err != nil {
					continue // widget hiccup; the next poll catches up
				}
				s.Observe(snap)
			}
		}
	}()
	return nil
}

// Stop tears the session down: the poll, any pending duck/settle
// timers, and an in-flight volume fade all die here.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.timers.stopAll()
}

// LoadQueue fetches a fresh mix and hands the player a read-only copy
// of the URIs. A second call while one is in flight is a no-op: station
// selection and a rapid re-render both race into here.
func (s *Session) LoadQueue(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	tracks, err := s.tracks.Tracks(ctx)
	if err != nil {
		s.notice("queue", err)
		return fmt.Errorf("load station tracks: %w", err)
	}
	if len(tracks) == 0 {
		s.notice("queue", errors.New("no tracks for station"))
	}

	q, err := NewQueue(tracks)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.queue = q
	s.mu.Unlock()
	queueLoads.Inc()
	log.Printf("🎶 Queue loaded: %d tracks", q.Len())

	if q.Len() == 0 {
		return nil // explicit empty state; widget keeps its silence
	}
	return s.player.Load(q.URIs())
}

// Observe is the push entry point: the widget calls it on every state
// change. The poll funnels into the same path, so duplicates and
// reordering between the two sources are harmless.
func (s *Session) Observe(snap player.Snapshot) {
	active := s.lifecycle.Active()

	s.mu.Lock()
	_, done := s.tracker.Observe(snap, s.queue, active)
	var firing *Firing
	if done != nil {
		tracksCompleted.Inc()
		log.Printf("⏭️  Completed: %s — %s", done.Artist, done.Name)
		if s.queue != nil {
			firing = s.sched.TrackCompleted(*done, s.queue, s.cfg.Topics)
		}
	}
	s.mu.Unlock()

	if firing == nil {
		return
	}
	req := s.buildRequest(firing)
	if s.lifecycle.Trigger(s.ctx, req) {
		bumpersFired.Inc()
	}
}

func (s *Session) buildRequest(f *Firing) bumper.Request {
	req := bumper.Request{
		StationID:          s.cfg.StationID,
		Topics:             s.cfg.Topics,
		Genres:             s.cfg.Genres,
		VoiceID:            s.cfg.VoiceID,
		VoiceName:          s.cfg.VoiceName,
		ListenerLocation:   s.cfg.ListenerLocation,
		CurrentTrackName:   f.Current.Name,
		CurrentTrackArtist: f.Current.Artist,
	}
	if f.HasNext {
		req.NextTrackName = f.Next.Name
		req.NextTrackArtist = f.Next.Artist
	}
	return req
}

// Cursor returns a copy of the tracker's current view.
func (s *Session) Cursor() Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Cursor()
}

// Playing is the visualizer's per-frame read.
func (s *Session) Playing() bool {
	return s.Cursor().Playing
}

// BumperActive reports whether a spoken segment currently owns the
// player volume.
func (s *Session) BumperActive() bool {
	return s.lifecycle.Active()
}

// Notices delivers non-fatal failures (queue fetch, bumper aborts).
func (s *Session) Notices() <-chan Notice {
	return s.notices
}

func (s *Session) notice(stage string, err error) {
	select {
	case s.notices <- Notice{Stage: stage, Err: err}:
	default:
		// Nobody listening; drop rather than block the engine.
	}
}
