package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *App) ListNGOs(w http.ResponseWriter, r *http.Request) {
	items, err := a.Directory.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) GetNGO(w http.ResponseWriter, r *http.Request) {
	ngo, err := a.Directory.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, ngo)
}
