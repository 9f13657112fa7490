package catalog

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// Store serves read-only catalog partitions.
// A reload swaps the whole snapshot; readers never see a partial one.
type Store struct {
	mu         sync.RWMutex
	laws       map[domain.Jurisdiction][]domain.Law
	cases      map[domain.Jurisdiction][]domain.Case
	byID       map[string]domain.Entry
	union      []domain.Entry
	states     []domain.Jurisdiction
	templates  []domain.DocumentTemplate
	lastReload time.Time // zero until the first successful Replace
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		laws:  make(map[domain.Jurisdiction][]domain.Law),
		cases: make(map[domain.Jurisdiction][]domain.Case),
		byID:  make(map[string]domain.Entry),
	}
}

// Replace validates snap and installs it as the current generation.
// On validation failure the previous generation stays in place.
func (s *Store) Replace(snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	laws := make(map[domain.Jurisdiction][]domain.Law, len(snap.Laws))
	cases := make(map[domain.Jurisdiction][]domain.Case, len(snap.Cases))
	byID := make(map[string]domain.Entry)
	union := make([]domain.Entry, 0)
	stateSet := make(map[domain.Jurisdiction]bool)

	// laws first, then cases; each in partition order
	for _, j := range sortedKeys(snap.Laws) {
		laws[j] = slices.Clone(snap.Laws[j])
		for _, l := range laws[j] {
			byID[l.ID] = l
			union = append(union, l)
		}
		if !j.IsCentral() {
			stateSet[j] = true
		}
	}
	for _, j := range sortedKeys(snap.Cases) {
		cases[j] = slices.Clone(snap.Cases[j])
		for _, c := range cases[j] {
			byID[c.ID] = c
			union = append(union, c)
		}
		if !j.IsCentral() {
			stateSet[j] = true
		}
	}

	states := sortedKeys(stateSet)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.laws = laws
	s.cases = cases
	s.byID = byID
	s.union = union
	s.states = states
	s.templates = slices.Clone(snap.Templates)
	s.lastReload = time.Now()
	return nil
}

// Partition returns the laws of a jurisdiction in authored order.
// Unknown jurisdictions yield an empty slice.
func (s *Store) Partition(j domain.Jurisdiction) []domain.Law {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.laws[j])
}

// CasePartition returns the cases of a jurisdiction in authored order.
func (s *Store) CasePartition(j domain.Jurisdiction) []domain.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.cases[j])
}

// GetByID looks an entry up across every partition of both kinds.
func (s *Store) GetByID(id string) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	return e, ok
}

// AllUnioned returns every entry: laws then cases, central first, then
// state partitions by ascending code.
func (s *Store) AllUnioned() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.union)
}

// States returns the state codes that have at least one partition.
func (s *Store) States() []domain.Jurisdiction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.states)
}

// Templates returns the document templates in authored order.
func (s *Store) Templates() []domain.DocumentTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.templates)
}

// Template looks a document template up by id.
func (s *Store) Template(id string) (domain.DocumentTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return domain.DocumentTemplate{}, false
}

// Count returns the number of entries across the catalog.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.union)
}

// GetLastReload returns when the current generation was installed.
func (s *Store) GetLastReload() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastReload
}
