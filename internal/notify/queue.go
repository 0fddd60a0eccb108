// Package notify keeps the ordered set of ephemeral notifications shown to a
// session and retires them when their display time runs out.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"aidconnect/internal/domain"
	"aidconnect/internal/schedule"
)

const (
	DefaultDuration  = 5 * time.Second
	DefaultExitDelay = 300 * time.Millisecond
)

// IDSource hands out notification identifiers.
type IDSource interface {
	Next() int64
}

// Options configures a Queue.
type Options struct {
	DefaultDuration time.Duration
	ExitDelay       time.Duration
	Scheduler       schedule.Scheduler
	IDs             IDSource
	Logger          zerolog.Logger
}

// Queue is safe for concurrent use. Entries are kept in insertion order.
type Queue struct {
	defaultDuration time.Duration
	exitDelay       time.Duration
	sched           schedule.Scheduler
	scope           *schedule.Scope
	ids             IDSource
	logger          zerolog.Logger

	mu     sync.Mutex
	items  []domain.Notification
	timers map[int64]uint64
}

// NewQueue builds a queue. Zero options fall back to the 5s display time, the
// 300ms exit delay, the system scheduler and clock-seeded identifiers.
func NewQueue(opts Options) *Queue {
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = DefaultDuration
	}
	if opts.ExitDelay < 0 {
		opts.ExitDelay = 0
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.System{}
	}
	if opts.IDs == nil {
		opts.IDs = NewClockIDs(opts.Scheduler.Now)
	}
	return &Queue{
		defaultDuration: opts.DefaultDuration,
		exitDelay:       opts.ExitDelay,
		sched:           opts.Scheduler,
		scope:           schedule.NewScope(opts.Scheduler),
		ids:             opts.IDs,
		logger:          opts.Logger,
		timers:          make(map[int64]uint64),
	}
}

// Add fills defaults, appends the notification and arms its expiry timer.
func (q *Queue) Add(in domain.NotificationInput) int64 {
	n := domain.Notification{
		ID:        q.ids.Next(),
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Duration:  q.defaultDuration,
		Phase:     domain.PhaseVisible,
		CreatedAt: q.sched.Now(),
	}
	if n.Type == "" {
		n.Type = domain.NotificationInfo
	}
	if in.Duration != nil {
		n.Duration = *in.Duration
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	if !n.Persistent() {
		id := n.ID
		if key, ok := q.scope.Schedule(n.Duration, func() { q.expire(id) }); ok {
			q.timers[id] = key
		}
	}
	q.mu.Unlock()

	q.logger.Debug().
		Int64("notification_id", n.ID).
		Str("type", string(n.Type)).
		Dur("duration", n.Duration).
		Msg("notify: added")
	return n.ID
}

// Remove deletes the notification immediately and stops its pending timer.
// Unknown ids are ignored.
func (q *Queue) Remove(id int64) {
	q.remove(id)
}

func (q *Queue) remove(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if key, ok := q.timers[id]; ok {
		q.scope.Cancel(key)
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			q.logger.Debug().Int64("notification_id", id).Msg("notify: removed")
			return true
		}
	}
	return false
}

// Dismiss starts the exit phase and removes the entry once the exit delay
// has passed. It reports whether the id was present.
func (q *Queue) Dismiss(id int64) bool {
	if q.exitDelay == 0 {
		return q.remove(id)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := -1
	for i := range q.items {
		if q.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if q.items[idx].Phase == domain.PhaseRemoving {
		return true
	}
	q.items[idx].Phase = domain.PhaseRemoving
	if key, ok := q.timers[id]; ok {
		q.scope.Cancel(key)
		delete(q.timers, id)
	}
	key, ok := q.scope.Schedule(q.exitDelay, func() { q.remove(id) })
	if !ok {
		q.items = append(q.items[:idx], q.items[idx+1:]...)
		return true
	}
	q.timers[id] = key
	return true
}

// List returns a snapshot in insertion order.
func (q *Queue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close cancels every pending expiry and exit timer.
func (q *Queue) Close() {
	q.scope.Close()
	q.mu.Lock()
	clear(q.timers)
	q.mu.Unlock()
}

func (q *Queue) expire(id int64) {
	q.Dismiss(id)
}
