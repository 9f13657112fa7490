package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
)

type savedListResponse struct {
	Saved []domain.SavedMark `json:"saved"`
}

type toggleResponse struct {
	EntryID string `json:"entry_id"`
	Saved   bool   `json:"saved"`
}

// SavedList returns the session's bookmarks, oldest first.
func SavedList(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		marks := s.Saved.List()
		if marks == nil {
			marks = []domain.SavedMark{}
		}
		writeJSON(w, http.StatusOK, savedListResponse{Saved: marks})
		return nil
	})
}

// SavedToggle flips the bookmark on a catalog entry.
func SavedToggle(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		id := chi.URLParam(r, "entryID")
		e, ok := d.Catalog.GetByID(id)
		if !ok {
			return fmt.Errorf("%w: %q", errEntryNotFound, id)
		}

		saved := s.Saved.Toggle(r.Context(), e)
		writeJSON(w, http.StatusOK, toggleResponse{EntryID: id, Saved: saved})
		return nil
	})
}

// SavedDelete removes a bookmark. The entry may no longer be in the
// catalog; removing an absent bookmark succeeds.
func SavedDelete(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		s.Saved.Unsave(r.Context(), chi.URLParam(r, "entryID"))
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}
