package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// Snapshot is one complete, immutable generation of catalog data.
type Snapshot struct {
	Laws      map[domain.Jurisdiction][]domain.Law
	Cases     map[domain.Jurisdiction][]domain.Case
	Templates []domain.DocumentTemplate
}

// Validate checks the invariants the store relies on: ids are unique across
// every partition of both kinds, categories and type tags are known, and
// entries sit in the partition their Jurisdiction names.
func (s *Snapshot) Validate() error {
	if s == nil {
		return errors.New("nil snapshot")
	}

	var errs []error
	seen := make(map[string]string)

	check := func(where string, e domain.Entry, partition domain.Jurisdiction) {
		card := e.Card()
		if card.ID == "" {
			errs = append(errs, fmt.Errorf("%s: entry %q has no id", where, card.Title))
			return
		}
		if prev, dup := seen[card.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q (first seen in %s)", where, card.ID, prev))
		} else {
			seen[card.ID] = where
		}
		if card.Title == "" {
			errs = append(errs, fmt.Errorf("%s: entry %q has no title", where, card.ID))
		}
		if !domain.IsKnownCategory(card.Category) {
			errs = append(errs, fmt.Errorf("%s: entry %q has unknown category %q", where, card.ID, card.Category))
		}
		if _, ok := domain.LookupTypeTag(e.Kind(), card.Type); !ok {
			errs = append(errs, fmt.Errorf("%s: entry %q has unknown %s type %q", where, card.ID, e.Kind(), card.Type))
		}
		if card.Jurisdiction != partition {
			errs = append(errs, fmt.Errorf("%s: entry %q declares jurisdiction %q", where, card.ID, card.Jurisdiction))
		}
	}

	for _, j := range sortedKeys(s.Laws) {
		for _, l := range s.Laws[j] {
			check("laws/"+string(j), l, j)
		}
	}
	for _, j := range sortedKeys(s.Cases) {
		for _, c := range s.Cases[j] {
			check("cases/"+string(j), c, j)
		}
	}

	templateIDs := make(map[string]bool, len(s.Templates))
	for _, t := range s.Templates {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("templates: template %q has no id", t.Title))
			continue
		}
		if templateIDs[t.ID] {
			errs = append(errs, fmt.Errorf("templates: duplicate id %q", t.ID))
		}
		templateIDs[t.ID] = true
		if _, err := t.Render(nil); err != nil {
			errs = append(errs, fmt.Errorf("templates: %w", err))
		}
	}

	return errors.Join(errs...)
}

// sortedKeys returns partition keys with Central first, then state codes
// ascending. This is the union order of the catalog.
func sortedKeys[V any](m map[domain.Jurisdiction]V) []domain.Jurisdiction {
	keys := make([]domain.Jurisdiction, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].IsCentral() != keys[j].IsCentral() {
			return keys[i].IsCentral()
		}
		return keys[i] < keys[j]
	})
	return keys
}
