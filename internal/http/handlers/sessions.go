package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"aidconnect/internal/i18n"
	"aidconnect/internal/middleware"
)

type createSessionRequest struct {
	Locale string `json:"locale"`
}

// CreateSession opens a session in the negotiated locale. An optional body
// {"locale": "en-US"} overrides negotiation.
func (a *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	if r.ContentLength > 0 {
		var req createSessionRequest
		if !a.decode(w, r, &req) {
			return
		}
		locale = i18n.Match(req.Locale, locale)
	}
	sess, err := a.Sessions.Create(locale)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set(middleware.SessionHeader, sess.ID)
	w.Header().Set("Location", "/v1/sessions/"+sess.ID)
	a.json(w, http.StatusCreated, sess.View())
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, sess.View())
}

func (a *App) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.Sessions.Close(chi.URLParam(r, "sid")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
