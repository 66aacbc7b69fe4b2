package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/httpserver/handlers"
)

func init() { Register(registerPlaces) }

func registerPlaces(r chi.Router, d deps.Deps) {
	r.Get("/api/places", handlers.Places(d))
	r.Post("/api/reload", handlers.Reload(d))
}
