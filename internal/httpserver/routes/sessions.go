package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerSessions) }

func registerSessions(r chi.Router, d deps.Deps) {
	r.Post("/sessions", handlers.CreateSession(d))

	r.Route("/sessions/{sid}", func(r chi.Router) {
		r.Delete("/", handlers.DeleteSession(d))

		r.Get("/saved", handlers.SavedList(d))
		r.Post("/saved/{entryID}/toggle", handlers.SavedToggle(d))
		r.Delete("/saved/{entryID}", handlers.SavedDelete(d))

		r.Get("/views/{screen}", handlers.ViewGet(d))
		r.Post("/views/{screen}/events", handlers.ViewEvent(d))

		r.Get("/wizard", handlers.WizardGet(d))
		r.Post("/wizard/events", handlers.WizardEvent(d))

		r.Get("/documents", handlers.DocumentsList(d))
		r.Get("/documents/{docID}", handlers.DocumentGet(d))
		r.Delete("/documents/{docID}", handlers.DocumentDelete(d))
	})
}
