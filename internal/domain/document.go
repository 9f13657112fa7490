package domain

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// TemplateField is one input on the form-fill step.
type TemplateField struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Required  bool   `json:"required"`
	Multiline bool   `json:"multiline,omitempty"`
}

// DocumentTemplate describes a generatable legal document.
type DocumentTemplate struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Fields      []TemplateField `json:"fields"`

	// Body uses {{.key}} placeholders, one per field key.
	Body string `json:"-"`

	// RequiresStampDuty inserts the stamp-duty step before the document
	// is considered final.
	RequiresStampDuty bool    `json:"requires_stamp_duty"`
	StampDutyAmount   float64 `json:"stamp_duty_amount,omitempty"`
}

// Field looks up a field definition by key.
func (t DocumentTemplate) Field(key string) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return TemplateField{}, false
}

// MissingFields lists the keys of required fields left blank in values.
func (t DocumentTemplate) MissingFields(values map[string]string) []string {
	var missing []string
	for _, f := range t.Fields {
		if f.Required && strings.TrimSpace(values[f.Key]) == "" {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// Render fills the body placeholders. Unknown placeholders render empty.
func (t DocumentTemplate) Render(values map[string]string) (string, error) {
	tmpl, err := template.New(t.ID).Option("missingkey=zero").Parse(t.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", t.ID, err)
	}

	data := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		data[f.Key] = values[f.Key]
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", t.ID, err)
	}
	return sb.String(), nil
}

// GeneratedDocument is a finished wizard run kept in the user's library.
type GeneratedDocument struct {
	ID         string            `json:"id"`
	TemplateID string            `json:"template_id"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Values     map[string]string `json:"values"`

	// Stamped is true only when stamp duty was paid and confirmed.
	Stamped        bool   `json:"stamped"`
	StampReference string `json:"stamp_reference,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
