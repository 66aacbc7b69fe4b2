package handlers

import (
	"net/http"

	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
)

// Places handles GET /api/places
func Places(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.All())
	}
}
