package domain

// CategoryAll is the pseudo-category that matches every entry.
const CategoryAll = "all"

// TypeAll disables type filtering in FilterState.
const TypeAll = "all"

const neutralColor = "#9E9E9E"

// Category is a chip in the category bar.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Categories is the closed set of entry categories, in display order.
var Categories = []Category{
	{ID: "consumer", Label: "Consumer"},
	{ID: "property", Label: "Property"},
	{ID: "labour", Label: "Labour"},
	{ID: "family", Label: "Family"},
	{ID: "criminal", Label: "Criminal"},
	{ID: "cyber", Label: "Cyber"},
	{ID: "rights", Label: "Rights"},
	{ID: "welfare", Label: "Welfare"},
}

// IsKnownCategory reports whether id names a real category.
// "all" is not a category.
func IsKnownCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// TypeTag is a closed tag with display metadata.
type TypeTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// LawTypes tag laws, schemes and portals.
var LawTypes = []TypeTag{
	{ID: "law", Label: "Law", Color: "#1E88E5"},
	{ID: "scheme", Label: "Scheme", Color: "#43A047"},
	{ID: "portal", Label: "Portal", Color: "#8E24AA"},
}

// CaseStatuses tag cases.
var CaseStatuses = []TypeTag{
	{ID: "ongoing", Label: "Ongoing", Color: "#FB8C00"},
	{ID: "upcoming", Label: "Upcoming", Color: "#1E88E5"},
	{ID: "closed", Label: "Closed", Color: "#757575"},
}

// TypeTags returns the tag set valid for kind.
func TypeTags(kind Kind) []TypeTag {
	switch kind {
	case KindLaw:
		return LawTypes
	case KindCase:
		return CaseStatuses
	default:
		return nil
	}
}

// LookupTypeTag finds a tag by id within the set for kind.
func LookupTypeTag(kind Kind, id string) (TypeTag, bool) {
	for _, t := range TypeTags(kind) {
		if t.ID == id {
			return t, true
		}
	}
	return TypeTag{}, false
}
