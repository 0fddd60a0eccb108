package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/certificate"
	"aidconnect/internal/document"
	"aidconnect/internal/domain"
	"aidconnect/internal/middleware"
	"aidconnect/internal/session"
)

const maxBodyBytes = 64 << 10

// App holds the dependencies shared by every handler.
type App struct {
	Sessions     *session.Registry
	Directory    domain.NGODirectory
	Certificates *certificate.Service
	Documents    *document.Paginator
	PreviewWidth int
	Logger       zerolog.Logger
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: msg}})
}

// fail maps domain errors onto HTTP responses.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.json(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code:    "validation_failed",
			Message: "the donation form has invalid fields",
			Fields:  verr.Fields,
		}})
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrFlowBusy):
		a.error(w, http.StatusConflict, "flow_busy", "a donation is already being processed")
	case errors.Is(err, domain.ErrSessionClosed):
		a.error(w, http.StatusGone, "session_closed", "the session has been closed")
	case errors.Is(err, domain.ErrRendering):
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("http: rendering failed")
		a.error(w, http.StatusInternalServerError, "rendering_failed", "could not generate the certificate, please try again")
	default:
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("http: unexpected error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// session resolves {sid} and writes the error response when it is unknown.
func (a *App) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := a.Sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	return sess, true
}
