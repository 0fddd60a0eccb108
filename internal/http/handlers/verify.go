package handlers

import (
	"net/http"

	"aidconnect/internal/certificate"
)

// Verify decodes the payload carried by a scanned certificate code. It
// checks the payload shape only; there is no ledger to consult.
func (a *App) Verify(w http.ResponseWriter, r *http.Request) {
	data := r.URL.Query().Get("data")
	if data == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "data is required")
		return
	}
	payload, err := certificate.ParsePayload(data)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"valid":   true,
		"payload": payload,
		"hash":    certificate.ShortHash(payload.ID),
	})
}
