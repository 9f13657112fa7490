package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
)

type sessionResponse struct {
	Session domain.SessionInfo `json:"session"`
}

// CreateSession starts a session: POST /api/sessions
func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := d.Sessions.Create(r.Context())
		d.Logger.Info("session started", logger.String("session_id", s.ID))
		writeJSON(w, http.StatusCreated, sessionResponse{Session: s.Info()})
	}
}

// DeleteSession ends a session and drops its stored data.
func DeleteSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "sid")
		if !d.Sessions.Delete(r.Context(), sid) {
			writeError(w, d.Logger, fmt.Errorf("%w: %q", errSessionNotFound, sid))
			return
		}
		d.Logger.Info("session ended", logger.String("session_id", sid))
		w.WriteHeader(http.StatusNoContent)
	}
}

// withSession resolves {sid} and runs fn under the session's event lock.
func withSession(d deps.Deps, fn func(w http.ResponseWriter, r *http.Request, s *session.Session) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "sid")
		s, ok := d.Sessions.Get(r.Context(), sid)
		if !ok {
			writeError(w, d.Logger, fmt.Errorf("%w: %q", errSessionNotFound, sid))
			return
		}

		if err := s.Do(func() error { return fn(w, r, s) }); err != nil {
			writeError(w, d.Logger.With(logger.String("session_id", sid)), err)
		}
	}
}
