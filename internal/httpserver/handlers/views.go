package handlers

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
	"github.com/MrSnakeDoc/lawdesk/internal/view"
)

const (
	screenLaws      = "laws"
	screenCases     = "cases"
	screenDocuments = "documents"
)

// browseResponse is a Laws or Cases screen. Saved lists the ids of shown
// entries the user bookmarked.
type browseResponse[E domain.Entry] struct {
	Screen       string        `json:"screen"`
	State        view.State[E] `json:"state"`
	Saved        []string      `json:"saved"`
	Related      []entryCard   `json:"related,omitempty"`
	ClearFilters bool          `json:"clear_filters"`
}

type documentsScreenResponse struct {
	Screen    string                     `json:"screen"`
	Pager     view.PagerState            `json:"pager"`
	Templates []domain.DocumentTemplate  `json:"templates,omitempty"`
	Documents []domain.GeneratedDocument `json:"documents,omitempty"`
}

// ViewGet renders a screen without changing it.
func ViewGet(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		resp, err := renderScreen(d, s, chi.URLParam(r, "screen"))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, resp)
		return nil
	})
}

// ViewEvent applies one UI event to a screen and renders the result.
func ViewEvent(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		screen := chi.URLParam(r, "screen")
		if !isScreen(screen) {
			return fmt.Errorf("%w: %q", errUnknownScreen, screen)
		}

		ev, err := readEvent(w, r, view.DecodeEvent)
		if err != nil {
			return err
		}

		switch screen {
		case screenLaws:
			_, err = s.Laws.Dispatch(ev)
		case screenCases:
			_, err = s.Cases.Dispatch(ev)
		case screenDocuments:
			_, err = s.DocumentsTabs.Dispatch(ev)
		}
		if err != nil {
			return err
		}

		resp, err := renderScreen(d, s, screen)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, resp)
		return nil
	})
}

func isScreen(screen string) bool {
	return screen == screenLaws || screen == screenCases || screen == screenDocuments
}

func renderScreen(d deps.Deps, s *session.Session, screen string) (any, error) {
	switch screen {
	case screenLaws:
		return renderBrowse(d, s, screen, s.Laws.State()), nil
	case screenCases:
		return renderBrowse(d, s, screen, s.Cases.State()), nil
	case screenDocuments:
		pager := s.DocumentsTabs.State()
		resp := documentsScreenResponse{Screen: screen, Pager: pager}
		if pager.Active == view.DocumentTabs[0] {
			resp.Templates = d.Catalog.Templates()
		} else {
			resp.Documents = s.Documents.List()
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownScreen, screen)
	}
}

func renderBrowse[E domain.Entry](d deps.Deps, s *session.Session, screen string, st view.State[E]) browseResponse[E] {
	resp := browseResponse[E]{
		Screen:       screen,
		State:        st,
		Saved:        []string{},
		ClearFilters: st.Empty && st.Filter != st.Filter.Cleared(),
	}

	for _, e := range st.Visible {
		if id := e.Card().ID; s.Saved.IsSaved(id) {
			resp.Saved = append(resp.Saved, id)
		}
	}

	if st.Entry != nil {
		entry := *st.Entry
		// the screen can only focus entries of its own kind
		sameKind := slices.DeleteFunc(d.Catalog.AllUnioned(), func(e domain.Entry) bool {
			return e.Kind() != entry.Kind()
		})
		related := domain.Related(sameKind, entry, d.RelatedLimit)
		resp.Related = cards(related, s.Saved.IsSaved)
		if id := entry.Card().ID; s.Saved.IsSaved(id) && !contains(resp.Saved, id) {
			resp.Saved = append(resp.Saved, id)
		}
	}
	return resp
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
