// Package debounce coalesces bursts of trigger events into a single
// deferred action.
package debounce

import (
	"sync"
	"time"
)

// Scheduler runs at most one pending action. Each Schedule supersedes the
// previous one, so only the most recently scheduled action can fire.
type Scheduler struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64

	// OnSupersede, when set, is called each time a pending action is
	// replaced or cancelled before firing.
	OnSupersede func()
}

func New() *Scheduler {
	return &Scheduler{}
}

// Schedule cancels any pending action and runs action after delay.
func (s *Scheduler) Schedule(delay time.Duration, action func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		// a timer that already fired may lose the race with Stop
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()

		action()
	})
}

// CancelPending drops the pending action, if any. It reports whether an
// action was pending.
func (s *Scheduler) CancelPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.stopLocked()
	s.gen++
	return pending
}

// Pending reports whether an action is waiting to fire.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Scheduler) stopLocked() bool {
	if s.timer == nil {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	if s.OnSupersede != nil {
		s.OnSupersede()
	}
	return true
}
