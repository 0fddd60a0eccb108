package domain

import "time"

// NotificationType selects the icon and style of a notification.
type NotificationType string

const (
	NotificationInfo     NotificationType = "info"
	NotificationSuccess  NotificationType = "success"
	NotificationError    NotificationType = "error"
	NotificationWarning  NotificationType = "warning"
	NotificationDonation NotificationType = "donation"
	NotificationImpact   NotificationType = "impact"
)

// Icon returns the glyph shown next to the notification. Unknown types fall
// back to the info glyph.
func (t NotificationType) Icon() string {
	switch t {
	case NotificationSuccess:
		return "✅"
	case NotificationError:
		return "❌"
	case NotificationWarning:
		return "⚠️"
	case NotificationDonation:
		return "💝"
	case NotificationImpact:
		return "🌟"
	default:
		return "ℹ️"
	}
}

// NotificationPhase is the visual lifecycle of a queued notification.
type NotificationPhase string

const (
	PhaseVisible  NotificationPhase = "visible"
	PhaseRemoving NotificationPhase = "removing"
)

// NotificationInput is a partially filled notification handed to the queue.
// A nil Duration takes the queue default; a zero Duration persists until
// dismissed.
type NotificationInput struct {
	Type     NotificationType
	Title    string
	Message  string
	Duration *time.Duration
}

// Notification is a queued, timed UI message.
type Notification struct {
	ID        int64             `json:"id"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message,omitempty"`
	Duration  time.Duration     `json:"-"`
	Phase     NotificationPhase `json:"phase"`
	CreatedAt time.Time         `json:"created_at"`
}

// Persistent reports whether the notification waits for manual dismissal.
func (n Notification) Persistent() bool {
	return n.Duration <= 0
}

// For returns a pointer to d, for use as NotificationInput.Duration.
func For(d time.Duration) *time.Duration {
	return &d
}
