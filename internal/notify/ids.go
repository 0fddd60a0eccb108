package notify

import (
	"sync"
	"time"
)

// ClockIDs derives identifiers from the creation time in milliseconds and
// bumps the value when two notifications land in the same millisecond, so
// identifiers stay strictly increasing.
type ClockIDs struct {
	now func() time.Time

	mu   sync.Mutex
	last int64
}

func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// SequenceIDs counts up from Start; handy for seeded tests.
type SequenceIDs struct {
	mu   sync.Mutex
	next int64
}

func NewSequenceIDs(start int64) *SequenceIDs {
	return &SequenceIDs{next: start}
}

func (s *SequenceIDs) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	return id
}
