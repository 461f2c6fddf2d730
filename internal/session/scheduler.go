package session

import "github.com/brodyman30/YourFM/internal/player"

// Scheduler counts completed tracks and decides when the music gets
// interrupted for a bumper.
type Scheduler struct {
	threshold int
	count     int
}

// Firing is the context handed to the bumper lifecycle when the
// scheduler pulls the trigger.
type Firing struct {
	Current player.Track
	Next    player.Track
	HasNext bool
}

func NewScheduler(threshold int) *Scheduler {
	if threshold <= 0 {
		threshold = 3
	}
	return &Scheduler{threshold: threshold}
}

// Count exposes the tracks-since-last-bumper counter (for tests and
// the session's status endpoint).
func (s *Scheduler) Count() int {
	return s.count
}

// TrackCompleted registers one distinct completion edge and returns a
// Firing when a bumper should start now.
//
// The counter resets synchronously at fire time, before any request
// goes out: a slow or failed bumper request must not let a second edge
// push the count past the threshold again.
func (s *Scheduler) TrackCompleted(done player.Track, q *Queue, topics []string) *Firing {
	s.count++

	if s.count < s.threshold {
		return nil
	}
	if len(topics) == 0 {
		// Bumpers are opt-in per station. The counter keeps growing,
		// harmlessly, and never fires.
		return nil
	}

	idx, ok := q.IndexByURI(done.URI)
	if !ok {
		idx, ok = q.IndexByTitleArtist(done.Name, done.Artist)
	}
	if !ok {
		// Can't describe "what just played" without a queue position;
		// hold the count and try again on the next edge.
		return nil
	}

	s.count = 0

	current, _ := q.At(idx)
	firing := &Firing{Current: current}
	if next, ok := q.At(idx + 1); ok {
		firing.Next = next
		firing.HasNext = true
	}
	return firing
}
