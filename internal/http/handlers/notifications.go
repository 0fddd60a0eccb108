package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"aidconnect/internal/domain"
)

type notificationView struct {
	ID         int64                    `json:"id"`
	Type       domain.NotificationType  `json:"type"`
	Icon       string                   `json:"icon"`
	Title      string                   `json:"title"`
	Message    string                   `json:"message"`
	DurationMS *int64                   `json:"duration_ms"`
	Phase      domain.NotificationPhase `json:"phase"`
	CreatedAt  time.Time                `json:"created_at"`
}

func toNotificationView(n domain.Notification) notificationView {
	v := notificationView{
		ID:        n.ID,
		Type:      n.Type,
		Icon:      n.Type.Icon(),
		Title:     n.Title,
		Message:   n.Message,
		Phase:     n.Phase,
		CreatedAt: n.CreatedAt,
	}
	if !n.Persistent() {
		ms := n.Duration.Milliseconds()
		v.DurationMS = &ms
	}
	return v
}

// maxNotificationMS is the longest duration_ms that fits a time.Duration.
const maxNotificationMS = math.MaxInt64 / int64(time.Millisecond)

type addNotificationRequest struct {
	Type       domain.NotificationType `json:"type"`
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
	DurationMS *int64                  `json:"duration_ms"`
}

func (a *App) ListNotifications(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	items := sess.Queue.List()
	out := make([]notificationView, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationView(n))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

// AddNotification queues a notification. duration_ms 0 keeps it until it is
// dismissed; an absent duration uses the queue default.
func (a *App) AddNotification(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req addNotificationRequest
	if !a.decode(w, r, &req) {
		return
	}
	in := domain.NotificationInput{Type: req.Type, Title: req.Title, Message: req.Message}
	if req.DurationMS != nil {
		if *req.DurationMS < 0 {
			a.fail(w, r, &domain.ValidationError{Fields: map[string]string{"duration_ms": "must not be negative"}})
			return
		}
		if *req.DurationMS > maxNotificationMS {
			a.fail(w, r, &domain.ValidationError{Fields: map[string]string{"duration_ms": "is too large"}})
			return
		}
		in.Duration = domain.For(time.Duration(*req.DurationMS) * time.Millisecond)
	}
	id := sess.Queue.Add(in)
	a.json(w, http.StatusCreated, map[string]any{"id": id})
}

// DismissNotification starts the exit phase, or removes the entry at once
// with ?immediate=true.
func (a *App) DismissNotification(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "nid"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid notification id")
		return
	}
	if immediate, _ := strconv.ParseBool(r.URL.Query().Get("immediate")); immediate {
		sess.Queue.Remove(id)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !sess.Queue.Dismiss(id) {
		a.error(w, http.StatusNotFound, "not_found", "notification not found")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
