package domain

import "strings"

// Kind distinguishes the catalog entry variants.
type Kind string

const (
	KindLaw  Kind = "law"
	KindCase Kind = "case"
)

// Jurisdiction keys a catalog partition.
// It is either Central (nationwide) or an upper-case state code ("MH", "KA").
type Jurisdiction string

// Central is the nationwide partition.
const Central Jurisdiction = "central"

// ParseJurisdiction normalizes user input into a partition key.
// Empty input maps to Central.
func ParseJurisdiction(s string) Jurisdiction {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(Central)) {
		return Central
	}
	return Jurisdiction(strings.ToUpper(s))
}

// IsCentral reports whether j is the nationwide partition.
func (j Jurisdiction) IsCentral() bool { return j == Central }

// Listing holds the fields every catalog entry exposes to the query engine.
type Listing struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is unique across the whole catalog, all partitions combined.
	ID string `json:"id"`

	// Jurisdiction is the partition this entry belongs to.
	Jurisdiction Jurisdiction `json:"jurisdiction"`

	// ─────────────────────────────
	// Display & matching
	// ─────────────────────────────

	Title   string `json:"title"`
	Preview string `json:"preview"`

	// Category is one of Categories (never "all").
	Category string `json:"category"`

	// Type is a TypeTag id valid for the entry kind.
	Type string `json:"type"`

	// Tags are free-text search terms.
	Tags []string `json:"tags,omitempty"`
}

// Entry is the capability shared by laws and cases.
// Filtering only ever looks at the Listing.
type Entry interface {
	Card() Listing
	Kind() Kind
}

// Law is a statute, government scheme or public portal.
type Law struct {
	Listing

	// Authority is the ministry or body administering it.
	Authority string `json:"authority,omitempty"`
	Year      int    `json:"year,omitempty"`
	Details   string `json:"details,omitempty"`

	// Link is an external URL, mostly set for portals.
	Link string `json:"link,omitempty"`
}

func (l Law) Card() Listing { return l.Listing }
func (l Law) Kind() Kind    { return KindLaw }

// Case is a user-facing legal matter (hearing calendar entry).
type Case struct {
	Listing

	CaseNumber  string `json:"case_number,omitempty"`
	Court       string `json:"court,omitempty"`
	NextHearing string `json:"next_hearing,omitempty"` // YYYY-MM-DD, empty when closed
	Advocate    string `json:"advocate,omitempty"`
}

func (c Case) Card() Listing { return c.Listing }
func (c Case) Kind() Kind    { return KindCase }

// Tag returns the display metadata for an entry's type.
// Unknown types get a neutral tag labelled with the raw id.
func Tag(e Entry) TypeTag {
	card := e.Card()
	if tag, ok := LookupTypeTag(e.Kind(), card.Type); ok {
		return tag
	}
	return TypeTag{ID: card.Type, Label: card.Type, Color: neutralColor}
}
