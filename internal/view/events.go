package view

import (
	"encoding/json"
	"fmt"
)

// Event is a discrete UI input delivered to a browse screen.
type Event interface {
	browseEvent()
}

type (
	// QueryChanged replaces the search text.
	QueryChanged struct{ Text string }
	// CategorySelected picks a category chip, or "all".
	CategorySelected struct{ ID string }
	// TypeSelected picks a type tag, or "all".
	TypeSelected struct{ ID string }
	// TabSelected picks the central or state tab directly.
	TabSelected struct{ Tab string }
	// StateSelected picks a state code from the state picker.
	StateSelected struct{ Code string }
	// SwipeReleased ends a horizontal swipe with delta DX.
	SwipeReleased struct{ DX float64 }
	// EntryOpened focuses a single entry.
	EntryOpened struct{ ID string }
	// BackPressed leaves the detail view.
	BackPressed struct{}
	// FiltersCleared resets query, category and type.
	FiltersCleared struct{}
)

func (QueryChanged) browseEvent()     {}
func (CategorySelected) browseEvent() {}
func (TypeSelected) browseEvent()     {}
func (TabSelected) browseEvent()      {}
func (StateSelected) browseEvent()    {}
func (SwipeReleased) browseEvent()    {}
func (EntryOpened) browseEvent()      {}
func (BackPressed) browseEvent()      {}
func (FiltersCleared) browseEvent()   {}

// Envelope is the wire form of an event:
//
//	{"type":"query_changed","text":"rti"}
//	{"type":"swipe_released","dx":-60}
type Envelope struct {
	Type string  `json:"type"`
	Text string  `json:"text,omitempty"`
	ID   string  `json:"id,omitempty"`
	Tab  string  `json:"tab,omitempty"`
	Code string  `json:"code,omitempty"`
	DX   float64 `json:"dx,omitempty"`
}

// DecodeEvent parses one JSON envelope into a browse event.
func DecodeEvent(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return env.Event()
}

// Event converts the envelope to its typed event.
func (e Envelope) Event() (Event, error) {
	switch e.Type {
	case "query_changed":
		return QueryChanged{Text: e.Text}, nil
	case "category_selected":
		return CategorySelected{ID: e.ID}, nil
	case "type_selected":
		return TypeSelected{ID: e.ID}, nil
	case "tab_selected":
		return TabSelected{Tab: e.Tab}, nil
	case "state_selected":
		return StateSelected{Code: e.Code}, nil
	case "swipe_released":
		return SwipeReleased{DX: e.DX}, nil
	case "entry_opened":
		return EntryOpened{ID: e.ID}, nil
	case "back_pressed":
		return BackPressed{}, nil
	case "filters_cleared":
		return FiltersCleared{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, e.Type)
	}
}
