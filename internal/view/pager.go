package view

import (
	"fmt"
	"slices"
	"sync"
)

// DocumentTabs are the pages of the Documents screen.
var DocumentTabs = []string{"templates", "saved"}

// PagerState is a rendered tab strip with page names.
type PagerState struct {
	Tabs   TabStrip `json:"tabs"`
	Pages  []string `json:"pages"`
	Active string   `json:"active"`
}

// Pager is a screen that is only a row of named pages. It accepts
// TabSelected and SwipeReleased; everything else is invalid.
type Pager struct {
	mu    sync.Mutex
	pages []string
	strip TabStrip
	opts  Options
}

// NewPager opens on the first page.
func NewPager(pages []string, opts Options) *Pager {
	return &Pager{
		pages: slices.Clone(pages),
		strip: TabStrip{Count: len(pages)},
		opts:  opts,
	}
}

// Dispatch applies ev.
func (p *Pager) Dispatch(ev Event) (PagerState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e := ev.(type) {
	case SwipeReleased:
		p.strip = p.strip.Swipe(e.DX, p.opts.threshold())
	case TabSelected:
		i := slices.Index(p.pages, e.Tab)
		if i < 0 {
			return p.stateLocked(), fmt.Errorf("%w: unknown page %q", ErrInvalidEvent, e.Tab)
		}
		p.strip = p.strip.Select(i)
	default:
		return p.stateLocked(), fmt.Errorf("%w: %T on a pager", ErrInvalidEvent, ev)
	}
	return p.stateLocked(), nil
}

// State returns the current page.
func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Pager) stateLocked() PagerState {
	s := PagerState{Tabs: p.strip, Pages: slices.Clone(p.pages)}
	if p.strip.Index < len(p.pages) {
		s.Active = p.pages[p.strip.Index]
	}
	return s
}
