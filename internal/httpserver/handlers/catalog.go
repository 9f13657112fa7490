package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
)

// entryCard is an entry as a list row or detail payload.
type entryCard struct {
	Kind  domain.Kind    `json:"kind"`
	Tag   domain.TypeTag `json:"tag"`
	Entry domain.Entry   `json:"entry"`
	Saved *bool          `json:"saved,omitempty"`
}

func newCard(e domain.Entry) entryCard {
	return entryCard{Kind: e.Kind(), Tag: domain.Tag(e), Entry: e}
}

func cards[E domain.Entry](entries []E, saved func(string) bool) []entryCard {
	out := make([]entryCard, 0, len(entries))
	for _, e := range entries {
		c := newCard(e)
		if saved != nil {
			v := saved(e.Card().ID)
			c.Saved = &v
		}
		out = append(out, c)
	}
	return out
}

type listResponse struct {
	Kind         domain.Kind        `json:"kind"`
	Jurisdiction domain.Jurisdiction `json:"jurisdiction"`
	Filter       domain.FilterState `json:"filter"`
	Entries      []entryCard        `json:"entries"`
	Counts       map[string]int     `json:"counts"`
	Categories   []domain.Category  `json:"categories"`
	Empty        bool               `json:"empty"`
	ClearFilters bool               `json:"clear_filters"`
}

type detailResponse struct {
	Entry   entryCard   `json:"entry"`
	Related []entryCard `json:"related"`
}

// CatalogList runs a one-shot query over one partition:
// GET /api/catalog/{kind}?jurisdiction=&q=&category=&type=
func CatalogList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := domain.Kind(strings.TrimSuffix(chi.URLParam(r, "kind"), "s"))
		if kind != domain.KindLaw && kind != domain.KindCase {
			writeError(w, d.Logger, fmt.Errorf("%w: %q", errUnknownKind, chi.URLParam(r, "kind")))
			return
		}

		f, err := filterFromQuery(r.URL.Query(), kind)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		var resp listResponse
		switch kind {
		case domain.KindLaw:
			resp = list(d.Catalog.Partition(f.Jurisdiction()), f)
		default:
			resp = list(d.Catalog.CasePartition(f.Jurisdiction()), f)
		}
		resp.Kind = kind
		writeJSON(w, http.StatusOK, resp)
	}
}

func list[E domain.Entry](partition []E, f domain.FilterState) listResponse {
	searched := domain.Search(partition, f.Query)
	counts := domain.CountsByCategory(searched)
	visible := domain.Apply(partition, f)

	return listResponse{
		Jurisdiction: f.Jurisdiction(),
		Filter:       f,
		Entries:      cards(visible, nil),
		Counts:       counts,
		Categories:   domain.VisibleCategories(counts),
		Empty:        len(visible) == 0,
		ClearFilters: len(visible) == 0 && f != f.Cleared(),
	}
}

func filterFromQuery(q url.Values, kind domain.Kind) (domain.FilterState, error) {
	f := domain.DefaultFilter()
	f.Query = q.Get("q")

	if j := domain.ParseJurisdiction(q.Get("jurisdiction")); !j.IsCentral() {
		f.Tab = domain.TabState
		f.StateCode = j
	}

	if c := q.Get("category"); c != "" && c != domain.CategoryAll {
		if !domain.IsKnownCategory(c) {
			return f, fmt.Errorf("%w: unknown category %q", errBadRequest, c)
		}
		f.Category = c
	}

	if t := q.Get("type"); t != "" && t != domain.TypeAll {
		if _, ok := domain.LookupTypeTag(kind, t); !ok {
			return f, fmt.Errorf("%w: unknown %s type %q", errBadRequest, kind, t)
		}
		f.Type = t
	}
	return f, nil
}

// CatalogEntry returns one entry and its related entries.
func CatalogEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, ok := d.Catalog.GetByID(id)
		if !ok {
			writeError(w, d.Logger, fmt.Errorf("%w: %q", errEntryNotFound, id))
			return
		}

		related := domain.Related(d.Catalog.AllUnioned(), e, d.RelatedLimit)
		writeJSON(w, http.StatusOK, detailResponse{
			Entry:   newCard(e),
			Related: cards(related, nil),
		})
	}
}

// CatalogOpen redirects to an entry's external link. Entries without a
// usable link get 204: failing to open is logged and never blocks the app.
func CatalogOpen(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, ok := d.Catalog.GetByID(id)
		if !ok {
			writeError(w, d.Logger, fmt.Errorf("%w: %q", errEntryNotFound, id))
			return
		}

		link := entryLink(e)
		if !isOpenableLink(link) {
			d.Logger.Warn("entry has no openable link",
				logger.String("entry_id", id),
				logger.String("link", link))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		d.Logger.Info("opening entry link",
			logger.String("entry_id", id),
			logger.String("link", link))
		http.Redirect(w, r, link, http.StatusFound)
	}
}

func entryLink(e domain.Entry) string {
	if law, ok := e.(domain.Law); ok {
		return law.Link
	}
	return ""
}

// isOpenableLink accepts absolute http(s) URLs only.
func isOpenableLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "https" || u.Scheme == "http"
}

type templatesResponse struct {
	Templates []domain.DocumentTemplate `json:"templates"`
}

// CatalogTemplates lists the document templates.
func CatalogTemplates(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates := d.Catalog.Templates()
		if templates == nil {
			templates = []domain.DocumentTemplate{}
		}
		writeJSON(w, http.StatusOK, templatesResponse{Templates: templates})
	}
}

type statesResponse struct {
	States []domain.Jurisdiction `json:"states"`
}

// CatalogStates lists the state codes for the state picker.
func CatalogStates(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		states := d.Catalog.States()
		if states == nil {
			states = []domain.Jurisdiction{}
		}
		writeJSON(w, http.StatusOK, statesResponse{States: states})
	}
}
