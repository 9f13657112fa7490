package domain

import "time"

// SavedMark is a user's bookmark of a catalog entry.
//
// Display fields are copied from the entry when the mark is created, so a
// later catalog reload never rewrites what the user saved.
type SavedMark struct {
	// EntryID is a weak reference: the entry may disappear on reload.
	EntryID string `json:"entry_id"`
	Kind    Kind   `json:"kind"`

	Title    string `json:"title"`
	Category string `json:"category"`
	TagLabel string `json:"tag_label"`
	TagColor string `json:"tag_color"`

	SavedAt time.Time `json:"saved_at"`
}

// NewSavedMark snapshots e's display fields at time at.
func NewSavedMark(e Entry, at time.Time) SavedMark {
	card := e.Card()
	tag := Tag(e)
	return SavedMark{
		EntryID:  card.ID,
		Kind:     e.Kind(),
		Title:    card.Title,
		Category: card.Category,
		TagLabel: tag.Label,
		TagColor: tag.Color,
		SavedAt:  at,
	}
}
