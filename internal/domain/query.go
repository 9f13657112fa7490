package domain

import (
	"strings"
)

// Search keeps entries whose title, preview or any tag contains query,
// case-insensitively. A blank query returns entries unchanged.
func Search[E Entry](entries []E, query string) []E {
	q := normalizeQuery(query)
	if q == "" {
		return entries
	}

	result := make([]E, 0, len(entries))
	for _, e := range entries {
		if matches(e.Card(), q) {
			result = append(result, e)
		}
	}
	return result
}

// FilterByCategory keeps entries of the given category.
// CategoryAll returns entries unchanged.
func FilterByCategory[E Entry](entries []E, categoryID string) []E {
	if categoryID == CategoryAll {
		return entries
	}

	result := make([]E, 0, len(entries))
	for _, e := range entries {
		if e.Card().Category == categoryID {
			result = append(result, e)
		}
	}
	return result
}

// FilterByType keeps entries whose type tag equals typeID exactly.
// There is no "all" passthrough here; callers check TypeAll themselves.
func FilterByType[E Entry](entries []E, typeID string) []E {
	result := make([]E, 0, len(entries))
	for _, e := range entries {
		if e.Card().Type == typeID {
			result = append(result, e)
		}
	}
	return result
}

// CountsByCategory returns, for "all" and every known category, how many
// entries fall into it. Categories with no entries map to 0.
func CountsByCategory[E Entry](entries []E) map[string]int {
	counts := make(map[string]int, len(Categories)+1)
	counts[CategoryAll] = len(entries)
	for _, c := range Categories {
		counts[c.ID] = 0
	}
	for _, e := range entries {
		cat := e.Card().Category
		if _, known := counts[cat]; known && cat != CategoryAll {
			counts[cat]++
		}
	}
	return counts
}

// VisibleCategories returns the chips to render for counts: "all" always,
// then every category with a non-zero count, in display order.
func VisibleCategories(counts map[string]int) []Category {
	chips := []Category{{ID: CategoryAll, Label: "All"}}
	for _, c := range Categories {
		if counts[c.ID] > 0 {
			chips = append(chips, c)
		}
	}
	return chips
}

// Apply runs search, then category, then type. Every active filter must hold.
func Apply[E Entry](entries []E, f FilterState) []E {
	out := Search(entries, f.Query)
	out = FilterByCategory(out, f.category())
	if t := f.typ(); t != TypeAll {
		out = FilterByType(out, t)
	}
	return out
}

// Related returns up to limit entries sharing entry's category, skipping
// entry itself, in the order they appear in all. limit <= 0 means no limit.
func Related(all []Entry, entry Entry, limit int) []Entry {
	if entry == nil {
		return nil
	}
	card := entry.Card()

	related := make([]Entry, 0)
	for _, e := range all {
		c := e.Card()
		if c.ID == card.ID || c.Category != card.Category {
			continue
		}
		related = append(related, e)
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related
}

// normalizeQuery lowercases and trims the raw query text.
func normalizeQuery(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matches(card Listing, q string) bool {
	if strings.Contains(strings.ToLower(card.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(card.Preview), q) {
		return true
	}
	for _, tag := range card.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
