package seed

// CatalogFile is the root of a catalog YAML file.
//
// Laws and cases are keyed by partition: "central" or a state code.
//
//	laws:
//	  central:
//	    - id: rti-act
//	      title: Right to Information Act, 2005
//	  MH:
//	    - id: mh-rent-control
type CatalogFile struct {
	Laws      map[string][]LawRecord  `yaml:"laws"`
	Cases     map[string][]CaseRecord `yaml:"cases"`
	Templates []TemplateRecord        `yaml:"templates"`
}

// LawRecord is a single law, scheme or portal.
type LawRecord struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Preview   string   `yaml:"preview"`
	Category  string   `yaml:"category"`
	Type      string   `yaml:"type"`
	Tags      []string `yaml:"tags,omitempty"`
	Authority string   `yaml:"authority,omitempty"`
	Year      int      `yaml:"year,omitempty"`
	Details   string   `yaml:"details,omitempty"`
	Link      string   `yaml:"link,omitempty"`
}

// CaseRecord is a single case.
type CaseRecord struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Category    string   `yaml:"category"`
	Status      string   `yaml:"status"`
	Tags        []string `yaml:"tags,omitempty"`
	CaseNumber  string   `yaml:"case_number,omitempty"`
	Court       string   `yaml:"court,omitempty"`
	NextHearing string   `yaml:"next_hearing,omitempty"`
	Advocate    string   `yaml:"advocate,omitempty"`
}

// TemplateRecord is a document template.
type TemplateRecord struct {
	ID                string        `yaml:"id"`
	Title             string        `yaml:"title"`
	Description       string        `yaml:"description"`
	Category          string        `yaml:"category"`
	RequiresStampDuty bool          `yaml:"requires_stamp_duty"`
	StampDutyAmount   float64       `yaml:"stamp_duty_amount,omitempty"`
	Fields            []FieldRecord `yaml:"fields"`
	Body              string        `yaml:"body"`
}

// FieldRecord is a template input.
type FieldRecord struct {
	Key       string `yaml:"key"`
	Label     string `yaml:"label"`
	Required  bool   `yaml:"required"`
	Multiline bool   `yaml:"multiline,omitempty"`
}
