package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// Mode is the browse screen's navigation state.
type Mode string

const (
	ModeBrowsing Mode = "browsing"
	ModeDetail   Mode = "detail"
)

var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrUnknownEntry = errors.New("entry not found")
)

// jurisdictionTabs is the tab count of the Laws and Cases screens.
const jurisdictionTabs = 2

// Nav is the part of a browse screen's state that events change directly.
// The visible list is derived from Filter.
type Nav struct {
	Mode    Mode               `json:"mode"`
	Filter  domain.FilterState `json:"filter"`
	Focused string             `json:"focused,omitempty"`
}

// InitialNav is the state a screen opens in.
func InitialNav() Nav {
	return Nav{Mode: ModeBrowsing, Filter: domain.DefaultFilter()}
}

// Options tune Transition.
type Options struct {
	SwipeThreshold float64
}

func (o Options) threshold() float64 {
	if o.SwipeThreshold <= 0 {
		return DefaultSwipeThreshold
	}
	return o.SwipeThreshold
}

// Transition applies ev to n and returns the next state. It never mutates n
// and performs no lookups; events that make no sense in the current mode
// return ErrInvalidEvent with n unchanged.
func Transition(n Nav, ev Event, opts Options) (Nav, error) {
	if n.Mode == ModeDetail {
		return detailTransition(n, ev)
	}

	switch e := ev.(type) {
	case QueryChanged:
		n.Filter.Query = e.Text

	case CategorySelected:
		id := strings.ToLower(strings.TrimSpace(e.ID))
		if id == "" {
			id = domain.CategoryAll
		}
		if id != domain.CategoryAll && !domain.IsKnownCategory(id) {
			return n, fmt.Errorf("%w: unknown category %q", ErrInvalidEvent, e.ID)
		}
		n.Filter.Category = id

	case TypeSelected:
		id := strings.ToLower(strings.TrimSpace(e.ID))
		if id == "" {
			id = domain.TypeAll
		}
		n.Filter.Type = id

	case TabSelected:
		tab, ok := domain.ParseTab(e.Tab)
		if !ok {
			return n, fmt.Errorf("%w: unknown tab %q", ErrInvalidEvent, e.Tab)
		}
		n.Filter.Tab = tab

	case StateSelected:
		code := domain.ParseJurisdiction(e.Code)
		if strings.TrimSpace(e.Code) == "" || code.IsCentral() {
			return n, fmt.Errorf("%w: %q is not a state code", ErrInvalidEvent, e.Code)
		}
		n.Filter.StateCode = code
		n.Filter.Tab = domain.TabState

	case SwipeReleased:
		strip := TabStrip{Count: jurisdictionTabs, Index: int(n.Filter.Tab)}
		n.Filter.Tab = domain.Tab(strip.Swipe(e.DX, opts.threshold()).Index)

	case EntryOpened:
		if e.ID == "" {
			return n, fmt.Errorf("%w: empty entry id", ErrInvalidEvent)
		}
		n.Mode = ModeDetail
		n.Focused = e.ID

	case FiltersCleared:
		n.Filter = n.Filter.Cleared()

	case BackPressed:
		return n, fmt.Errorf("%w: back pressed while browsing", ErrInvalidEvent)

	default:
		return n, fmt.Errorf("%w: %T", ErrInvalidEvent, ev)
	}

	return n, nil
}

func detailTransition(n Nav, ev Event) (Nav, error) {
	switch e := ev.(type) {
	case BackPressed:
		n.Mode = ModeBrowsing
		n.Focused = ""
		return n, nil
	case EntryOpened:
		// related entries open in place
		if e.ID == "" {
			return n, fmt.Errorf("%w: empty entry id", ErrInvalidEvent)
		}
		n.Focused = e.ID
		return n, nil
	default:
		return n, fmt.Errorf("%w: %T in detail view", ErrInvalidEvent, ev)
	}
}
