// Package schedule provides deferred callbacks behind a small capability so
// timer-driven flows can be cancelled as a group and driven deterministically
// in tests.
package schedule

import (
	"sync"
	"time"
)

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// System schedules on the runtime timers.
type System struct{}

func (System) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

func (System) Now() time.Time { return time.Now() }

// Scope owns every timer it schedules. Close stops the pending ones and keeps
// callbacks that already fired from running.
type Scope struct {
	sched Scheduler

	mu     sync.Mutex
	next   uint64
	timers map[uint64]Timer
	closed bool
}

// NewScope creates a scope on top of sched. A nil scheduler uses System.
func NewScope(sched Scheduler) *Scope {
	if sched == nil {
		sched = System{}
	}
	return &Scope{sched: sched, timers: make(map[uint64]Timer)}
}

// After schedules f and reports whether it was accepted. Closed scopes
// reject new work.
func (s *Scope) After(d time.Duration, f func()) bool {
	_, ok := s.Schedule(d, f)
	return ok
}

// Schedule is After returning a key that Cancel accepts.
func (s *Scope) Schedule(d time.Duration, f func()) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false
	}
	s.next++
	key := s.next
	s.timers[key] = s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		if _, live := s.timers[key]; !live {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		f()
	})
	return key, true
}

// Cancel stops one pending timer. It reports false when the timer already
// fired, was cancelled, or the key is unknown.
func (s *Scope) Cancel(key uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[key]
	if !ok {
		return false
	}
	delete(s.timers, key)
	t.Stop()
	return true
}

// Now proxies the underlying scheduler clock.
func (s *Scope) Now() time.Time {
	return s.sched.Now()
}

// Pending returns the number of timers that have not fired yet.
func (s *Scope) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close stops all pending timers. It is safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
