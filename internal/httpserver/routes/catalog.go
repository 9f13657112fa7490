package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/templates", handlers.CatalogTemplates(d))
		r.Get("/states", handlers.CatalogStates(d))
		r.Get("/entries/{id}", handlers.CatalogEntry(d))
		r.Get("/entries/{id}/open", handlers.CatalogOpen(d))
		r.Get("/{kind}", handlers.CatalogList(d))
	})
}
