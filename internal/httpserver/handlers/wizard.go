package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
	"github.com/MrSnakeDoc/lawdesk/internal/view/wizard"
)

type wizardResponse struct {
	State     wizard.State              `json:"state"`
	Template  *domain.DocumentTemplate  `json:"template,omitempty"`
	Templates []domain.DocumentTemplate `json:"templates,omitempty"`

	// Dismissible is false on the stamp-duty steps: only pay or skip
	// leaves them.
	Dismissible bool `json:"dismissible"`
}

// WizardGet renders the document wizard.
func WizardGet(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		writeJSON(w, http.StatusOK, renderWizard(d, s.Wizard.State()))
		return nil
	})
}

// WizardEvent applies one wizard event.
func WizardEvent(d deps.Deps) http.HandlerFunc {
	return withSession(d, func(w http.ResponseWriter, r *http.Request, s *session.Session) error {
		ev, err := readEvent(w, r, wizard.DecodeEvent)
		if err != nil {
			return err
		}

		st, err := s.Wizard.Dispatch(r.Context(), ev)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, renderWizard(d, st))
		return nil
	})
}

func renderWizard(d deps.Deps, st wizard.State) wizardResponse {
	resp := wizardResponse{
		State:       st,
		Dismissible: st.Step != wizard.StepStampDutyPrompt && st.Step != wizard.StepPaymentPending,
	}

	if st.Step == wizard.StepTemplateList {
		resp.Templates = d.Catalog.Templates()
		return resp
	}
	if tmpl, ok := d.Catalog.Template(st.TemplateID); ok {
		resp.Template = &tmpl
	}
	return resp
}
