package session

import (
	"sync"
	"time"
)

// timerSet registers every timer and ticker a session creates so that
// teardown releases them together. Nothing scheduled through the set
// can fire after stopAll, including an in-flight volume fade.
type timerSet struct {
	mu      sync.Mutex
	stopped bool
	timers  []*time.Timer
	tickers []*time.Ticker
	done    chan struct{}
}

func newTimerSet() *timerSet {
	return &timerSet{done: make(chan struct{})}
}

// afterFunc schedules fn unless the set is already torn down.
func (ts *timerSet) afterFunc(d time.Duration, fn func()) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.stopped {
		return false
	}
	ts.timers = append(ts.timers, time.AfterFunc(d, fn))
	return true
}

// ticker hands out a registered ticker plus the set's teardown channel;
// loops draining the ticker must also select on done.
func (ts *timerSet) ticker(d time.Duration) (*time.Ticker, <-chan struct{}, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.stopped {
		return nil, nil, false
	}
	t := time.NewTicker(d)
	ts.tickers = append(ts.tickers, t)
	return t, ts.done, true
}

func (ts *timerSet) stopAll() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.stopped {
		return
	}
	ts.stopped = true
	for _, t := range ts.timers {
		t.Stop()
	}
	for _, t := range ts.tickers {
		t.Stop()
	}
	close(ts.done)
}
