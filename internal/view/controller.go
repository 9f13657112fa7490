package view

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// Catalog is the read side of the catalog store the browse screens need.
type Catalog interface {
	Partition(j domain.Jurisdiction) []domain.Law
	CasePartition(j domain.Jurisdiction) []domain.Case
	GetByID(id string) (domain.Entry, bool)
}

// Source feeds one browse screen with entries of a single kind.
type Source[E domain.Entry] struct {
	Kind      domain.Kind
	Partition func(domain.Jurisdiction) []E
	Lookup    func(id string) (E, bool)
}

// LawSource browses the laws and schemes of c.
func LawSource(c Catalog) Source[domain.Law] {
	return Source[domain.Law]{Kind: domain.KindLaw, Partition: c.Partition, Lookup: lookupAs[domain.Law](c)}
}

// CaseSource browses the cases of c.
func CaseSource(c Catalog) Source[domain.Case] {
	return Source[domain.Case]{Kind: domain.KindCase, Partition: c.CasePartition, Lookup: lookupAs[domain.Case](c)}
}

func lookupAs[E domain.Entry](c Catalog) func(string) (E, bool) {
	return func(id string) (E, bool) {
		e, ok := c.GetByID(id)
		if !ok {
			var zero E
			return zero, false
		}
		typed, ok := e.(E)
		return typed, ok
	}
}

// State is a rendered snapshot of a browse screen.
type State[E domain.Entry] struct {
	Nav
	Tabs       TabStrip          `json:"tabs"`
	Visible    []E               `json:"visible"`
	Counts     map[string]int    `json:"counts"`
	Categories []domain.Category `json:"categories"`
	Entry      *E                `json:"entry,omitempty"`
	Empty      bool              `json:"empty"`
	Recomputes int               `json:"-"`
}

// Controller owns one browse screen for one session. The visible list is
// cached and only recomputed when the filter changes or Refresh is called.
type Controller[E domain.Entry] struct {
	mu         sync.Mutex
	source     Source[E]
	opts       Options
	nav        Nav
	visible    []E
	counts     map[string]int
	focused    *E
	recomputes int
}

// NewController opens a screen in its initial state.
func NewController[E domain.Entry](src Source[E], opts Options) *Controller[E] {
	c := &Controller[E]{
		source: src,
		opts:   opts,
		nav:    InitialNav(),
	}
	c.recomputeLocked()
	return c
}

// Dispatch applies ev and returns the resulting state. On error the state
// is left untouched.
func (c *Controller[E]) Dispatch(ev Event) (State[E], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Transition(c.nav, ev, c.opts)
	if err != nil {
		return c.stateLocked(), err
	}

	if t := next.Filter.Type; t != c.nav.Filter.Type && t != domain.TypeAll {
		if _, ok := domain.LookupTypeTag(c.source.Kind, t); !ok {
			return c.stateLocked(), fmt.Errorf("%w: unknown %s type %q", ErrInvalidEvent, c.source.Kind, t)
		}
	}

	if next.Mode == ModeDetail && next.Focused != c.nav.Focused {
		e, ok := c.source.Lookup(next.Focused)
		if !ok {
			return c.stateLocked(), ErrUnknownEntry
		}
		c.focused = &e
	}
	if next.Mode == ModeBrowsing {
		c.focused = nil
	}

	filterChanged := next.Filter != c.nav.Filter
	c.nav = next
	if filterChanged {
		c.recomputeLocked()
	}

	return c.stateLocked(), nil
}

// State returns the current snapshot without changing anything.
func (c *Controller[E]) State() State[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Refresh recomputes the visible list against the current catalog, e.g.
// after a reload. A focused entry that vanished drops the screen back to
// browsing.
func (c *Controller[E]) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.focused != nil {
		if e, ok := c.source.Lookup(c.nav.Focused); ok {
			c.focused = &e
		} else {
			c.focused = nil
			c.nav.Mode = ModeBrowsing
			c.nav.Focused = ""
		}
	}
	c.recomputeLocked()
}

func (c *Controller[E]) recomputeLocked() {
	var partition []E
	if j := c.nav.Filter.Jurisdiction(); j != "" {
		partition = c.source.Partition(j)
	}

	searched := domain.Search(partition, c.nav.Filter.Query)
	c.counts = domain.CountsByCategory(searched)

	rest := c.nav.Filter
	rest.Query = ""
	c.visible = domain.Apply(searched, rest)
	c.recomputes++
}

func (c *Controller[E]) stateLocked() State[E] {
	s := State[E]{
		Nav:        c.nav,
		Tabs:       TabStrip{Count: jurisdictionTabs, Index: int(c.nav.Filter.Tab)},
		Visible:    slices.Clone(c.visible),
		Counts:     maps.Clone(c.counts),
		Categories: domain.VisibleCategories(c.counts),
		Empty:      len(c.visible) == 0,
		Recomputes: c.recomputes,
	}
	if s.Visible == nil {
		s.Visible = []E{}
	}
	if c.focused != nil {
		e := *c.focused
		s.Entry = &e
	}
	return s
}
