// Package session holds the diagnostics of the most recent lint run.
package session

import (
	"sync"

	tt "github.com/asplogic/jshint/internal/types"
)

// Canceler is a pending deferred trigger that a reset must cancel.
type Canceler interface {
	CancelPending() bool
}

// Session is the single live lint session. Every reset starts a new run
// sequence; results recorded under an older sequence are discarded.
type Session struct {
	mu      sync.RWMutex
	seq     uint64
	entries []tt.PresentedDiagnostic
	timer   Canceler
}

func New() *Session {
	return &Session{}
}

// Bind attaches the debounce timer cancelled by every reset.
func (s *Session) Bind(timer Canceler) {
	s.mu.Lock()
	s.timer = timer
	s.mu.Unlock()
}

// Reset cancels the pending timer, clears the diagnostics and returns the
// sequence number of the run that may record next.
func (s *Session) Reset() uint64 {
	s.mu.Lock()
	timer := s.timer
	s.seq++
	s.entries = nil
	seq := s.seq
	s.mu.Unlock()

	if timer != nil {
		timer.CancelPending()
	}
	return seq
}

// Record replaces the diagnostic set if seq is still current. It reports
// whether the set was stored.
func (s *Session) Record(seq uint64, diagnostics []tt.PresentedDiagnostic) bool {
	entries := make([]tt.PresentedDiagnostic, len(diagnostics))
	copy(entries, diagnostics)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.entries = entries
	return true
}

// Seq returns the current run sequence.
func (s *Session) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// IsCurrent reports whether seq still owns the session.
func (s *Session) IsCurrent(seq uint64) bool {
	return s.Seq() == seq
}

// Current returns a copy of the recorded diagnostics in run order.
func (s *Session) Current() []tt.PresentedDiagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tt.PresentedDiagnostic, len(s.entries))
	copy(out, s.entries)
	return out
}

// FindAt returns the first diagnostic whose region contains pos.
func (s *Session) FindAt(pos int) (tt.PresentedDiagnostic, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.entries {
		if d.Region.Contains(pos) {
			return d, true
		}
	}
	return tt.PresentedDiagnostic{}, false
}

// FindIntersecting returns the first diagnostic whose region intersects r.
func (s *Session) FindIntersecting(r tt.Region) (tt.PresentedDiagnostic, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.entries {
		if d.Region.Intersects(r) {
			return d, true
		}
	}
	return tt.PresentedDiagnostic{}, false
}
