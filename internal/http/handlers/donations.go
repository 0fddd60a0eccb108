package handlers

import (
	"net/http"

	"aidconnect/internal/domain"
)

// SubmitDonation validates the form and starts processing. Completion is
// observed by polling the session and its notifications.
func (a *App) SubmitDonation(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req domain.DonationRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := sess.Flow.Submit(r.Context(), req); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusAccepted, sess.Flow.Snapshot())
}
