package seed

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/lawdesk/internal/catalog"
	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// Mapper converts catalog records to a catalog.Snapshot
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCatalog converts a parsed file into a validated snapshot.
// Partition keys are normalized ("mh" -> "MH", "Central" -> "central") and
// stamped onto every entry they contain.
func (m *Mapper) MapCatalog(file *CatalogFile) (*catalog.Snapshot, error) {
	if file == nil {
		return nil, fmt.Errorf("no catalog to map")
	}

	snap := &catalog.Snapshot{
		Laws:  make(map[domain.Jurisdiction][]domain.Law, len(file.Laws)),
		Cases: make(map[domain.Jurisdiction][]domain.Case, len(file.Cases)),
	}

	for key, records := range file.Laws {
		j := domain.ParseJurisdiction(key)
		for _, r := range records {
			snap.Laws[j] = append(snap.Laws[j], domain.Law{
				Listing: domain.Listing{
					ID:           strings.TrimSpace(r.ID),
					Jurisdiction: j,
					Title:        strings.TrimSpace(r.Title),
					Preview:      strings.TrimSpace(r.Preview),
					Category:     strings.ToLower(strings.TrimSpace(r.Category)),
					Type:         strings.ToLower(strings.TrimSpace(r.Type)),
					Tags:         cleanTags(r.Tags),
				},
				Authority: r.Authority,
				Year:      r.Year,
				Details:   strings.TrimSpace(r.Details),
				Link:      strings.TrimSpace(r.Link),
			})
		}
	}

	for key, records := range file.Cases {
		j := domain.ParseJurisdiction(key)
		for _, r := range records {
			snap.Cases[j] = append(snap.Cases[j], domain.Case{
				Listing: domain.Listing{
					ID:           strings.TrimSpace(r.ID),
					Jurisdiction: j,
					Title:        strings.TrimSpace(r.Title),
					Preview:      strings.TrimSpace(r.Summary),
					Category:     strings.ToLower(strings.TrimSpace(r.Category)),
					Type:         strings.ToLower(strings.TrimSpace(r.Status)),
					Tags:         cleanTags(r.Tags),
				},
				CaseNumber:  r.CaseNumber,
				Court:       r.Court,
				NextHearing: r.NextHearing,
				Advocate:    r.Advocate,
			})
		}
	}

	for _, r := range file.Templates {
		fields := make([]domain.TemplateField, 0, len(r.Fields))
		for _, f := range r.Fields {
			fields = append(fields, domain.TemplateField{
				Key:       f.Key,
				Label:     f.Label,
				Required:  f.Required,
				Multiline: f.Multiline,
			})
		}
		snap.Templates = append(snap.Templates, domain.DocumentTemplate{
			ID:                strings.TrimSpace(r.ID),
			Title:             r.Title,
			Description:       r.Description,
			Category:          r.Category,
			Fields:            fields,
			Body:              r.Body,
			RequiresStampDuty: r.RequiresStampDuty,
			StampDutyAmount:   r.StampDutyAmount,
		})
	}

	if len(snap.Laws) == 0 && len(snap.Cases) == 0 {
		return nil, fmt.Errorf("no entries found in catalog")
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	return snap, nil
}

// cleanTags trims tags and drops empty ones.
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
