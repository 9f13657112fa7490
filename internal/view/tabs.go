package view

import "math"

// DefaultSwipeThreshold is the release delta, in layout units, a horizontal
// swipe must exceed to change tab.
const DefaultSwipeThreshold = 50.0

// TabStrip is a row of Count tabs with one selected.
type TabStrip struct {
	Count int `json:"count"`
	Index int `json:"index"`
}

// Swipe moves one tab when |dx| > threshold. A negative delta (finger moving
// left) selects the next tab, a positive one the previous. The index is
// clamped to the strip.
func (t TabStrip) Swipe(dx, threshold float64) TabStrip {
	if math.IsNaN(dx) || math.Abs(dx) <= threshold {
		return t
	}
	if dx < 0 {
		return t.Select(t.Index + 1)
	}
	return t.Select(t.Index - 1)
}

// Select moves to index i, clamped to the strip.
func (t TabStrip) Select(i int) TabStrip {
	switch {
	case t.Count <= 0:
		i = 0
	case i < 0:
		i = 0
	case i >= t.Count:
		i = t.Count - 1
	}
	t.Index = i
	return t
}
