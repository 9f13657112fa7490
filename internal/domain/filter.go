package domain

// Tab is a jurisdiction tab on the browse screens.
type Tab int

const (
	TabCentral Tab = iota
	TabState
)

// String returns the wire name of the tab.
func (t Tab) String() string {
	if t == TabState {
		return "state"
	}
	return "central"
}

// ParseTab maps a wire name to a Tab.
func ParseTab(s string) (Tab, bool) {
	switch s {
	case "central":
		return TabCentral, true
	case "state":
		return TabState, true
	default:
		return TabCentral, false
	}
}

// FilterState is the combined selection driving a visible list.
// It holds no entry data; it is applied to one catalog partition.
type FilterState struct {
	Query     string       `json:"query"`
	Category  string       `json:"category"`
	Type      string       `json:"type"`
	Tab       Tab          `json:"-"`
	StateCode Jurisdiction `json:"state_code,omitempty"`
}

// DefaultFilter is the unfiltered central view.
func DefaultFilter() FilterState {
	return FilterState{Category: CategoryAll, Type: TypeAll, Tab: TabCentral}
}

// Jurisdiction returns the partition selected by the tab.
// The state tab with no state picked yields "", an empty partition.
func (f FilterState) Jurisdiction() Jurisdiction {
	if f.Tab == TabState {
		return f.StateCode
	}
	return Central
}

// Cleared resets query, category and type while keeping the tab and state.
func (f FilterState) Cleared() FilterState {
	f.Query = ""
	f.Category = CategoryAll
	f.Type = TypeAll
	return f
}

func (f FilterState) category() string {
	if f.Category == "" {
		return CategoryAll
	}
	return f.Category
}

func (f FilterState) typ() string {
	if f.Type == "" {
		return TypeAll
	}
	return f.Type
}
