package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/httpserver/handlers"
)

func init() { Register(registerFolders) }

func registerFolders(r chi.Router, d deps.Deps) {
	r.Route("/api/folders", func(r chi.Router) {
		r.Get("/", handlers.ListFolders(d))
		r.Post("/", handlers.CreateFolder(d))
		r.Get("/{id}", handlers.GetFolder(d))
		r.Post("/{id}/votes", handlers.SubmitVote(d))
		r.Get("/{id}/results", handlers.Results(d))
	})
}
