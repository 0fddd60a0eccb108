// Package session keeps the per-visitor state of the donation experience:
// one notification queue, one donation flow and the certificate of its
// current result.
package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/language"

	"aidconnect/internal/certificate"
	"aidconnect/internal/donation"
	"aidconnect/internal/notify"
)

// Session is one visitor. It is created by a Registry and torn down as a
// unit: closing it cancels queued timers, the donation flow and any render
// started through RenderContext.
type Session struct {
	ID        string
	Locale    language.Tag
	CreatedAt time.Time
	Queue     *notify.Queue
	Flow      *donation.Controller

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	lastSeen time.Time
	cert     *certificate.Certificate
	closed   bool
}

// View is the JSON shape of a session.
type View struct {
	ID            string            `json:"id"`
	Locale        string            `json:"locale"`
	CreatedAt     time.Time         `json:"created_at"`
	LastSeen      time.Time         `json:"last_seen"`
	Flow          donation.Snapshot `json:"flow"`
	Notifications int               `json:"notifications"`
	Certificate   bool              `json:"certificate_ready"`
}

func (s *Session) View() View {
	s.mu.Lock()
	v := View{
		ID:          s.ID,
		Locale:      s.Locale.String(),
		CreatedAt:   s.CreatedAt,
		LastSeen:    s.lastSeen,
		Certificate: s.cert != nil,
	}
	s.mu.Unlock()
	v.Flow = s.Flow.Snapshot()
	v.Notifications = s.Queue.Len()
	return v
}

// Certificate returns the certificate of the current flow's donation. It is
// dropped as soon as a new donation is submitted.
func (s *Session) Certificate() (certificate.Certificate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cert == nil {
		return certificate.Certificate{}, false
	}
	return *s.cert, true
}

// RenderContext derives a context that is cancelled when either parent is
// done or the session closes.
func (s *Session) RenderContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Closed reports whether the session was torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// setCertificate stores c only while its donation is still the flow's
// current result. It reports whether c was kept.
func (s *Session) setCertificate(c certificate.Certificate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	current, ok := s.Flow.Completed()
	if !ok || current.ID != c.Donation.ID {
		return false
	}
	s.cert = &c
	return true
}

func (s *Session) clearCertificate() {
	s.mu.Lock()
	s.cert = nil
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	s.mu.Unlock()

	s.Flow.Close()
	s.Queue.Close()
	s.cancel()
	return true
}
