package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
)

type documentsResponse struct {
	Documents []domain.GeneratedDocument `json:"documents"`
}

type documentResponse struct {
	Document domain.GeneratedDocument `json:"document"`
}

// DocumentsList returns the session's generated documents.
func DocumentsList(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		docs := s.Documents.List()
		if docs == nil {
			docs = []domain.GeneratedDocument{}
		}
		writeJSON(w, http.StatusOK, documentsResponse{Documents: docs})
		return nil
	})
}

// DocumentGet returns one generated document.
func DocumentGet(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		id := chi.URLParam(r, "docID")
		doc, ok := s.Documents.Get(id)
		if !ok {
			return fmt.Errorf("%w: %q", errDocumentNotFound, id)
		}
		writeJSON(w, http.StatusOK, documentResponse{Document: doc})
		return nil
	})
}

// DocumentDelete removes a generated document.
func DocumentDelete(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		id := chi.URLParam(r, "docID")
		if !s.Documents.Remove(r.Context(), id) {
			return fmt.Errorf("%w: %q", errDocumentNotFound, id)
		}
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
}
