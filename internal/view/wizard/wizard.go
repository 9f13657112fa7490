// Package wizard is the document-generation flow:
//
//	TemplateList -> FormFill <-> Preview -> Success
//
// with StampDutyPrompt (and PaymentPending behind it) inserted before
// Success for templates that require stamp duty.
package wizard

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

type Step string

const (
	StepTemplateList    Step = "template_list"
	StepFormFill        Step = "form_fill"
	StepPreview         Step = "preview"
	StepStampDutyPrompt Step = "stamp_duty_prompt"
	StepPaymentPending  Step = "payment_pending"
	StepSuccess         Step = "success"
)

var (
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrUnknownField      = errors.New("unknown template field")

	// ErrNotDismissible is returned for Back on the stamp-duty steps.
	ErrNotDismissible = fmt.Errorf("%w: stamp duty must be paid or skipped", ErrInvalidTransition)
)

// MissingFieldsError lists required fields left blank when a preview was
// requested.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Env supplies the collaborators a transition needs.
type Env struct {
	Template func(id string) (domain.DocumentTemplate, bool)
	Now      func() time.Time
	NewID    func() string
}

// State is one wizard instance.
type State struct {
	Step       Step              `json:"step"`
	TemplateID string            `json:"template_id,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
	Preview    string            `json:"preview,omitempty"`

	// StampDutyAmount is set while the stamp-duty steps are shown.
	StampDutyAmount float64 `json:"stamp_duty_amount,omitempty"`

	// Document is the result, set only on Success.
	Document *domain.GeneratedDocument `json:"document,omitempty"`
}

// Initial is the template picker.
func Initial() State {
	return State{Step: StepTemplateList}
}

// Transition applies ev to s. s is never mutated; on error the returned
// state equals s.
func Transition(s State, ev Event, env Env) (State, error) {
	switch s.Step {
	case StepTemplateList:
		if e, ok := ev.(TemplateChosen); ok {
			tmpl, found := env.Template(e.ID)
			if !found {
				return s, fmt.Errorf("%w: %q", ErrUnknownTemplate, e.ID)
			}
			return State{Step: StepFormFill, TemplateID: tmpl.ID, Values: map[string]string{}}, nil
		}

	case StepFormFill:
		switch e := ev.(type) {
		case FieldChanged:
			tmpl, err := current(s, env)
			if err != nil {
				return s, err
			}
			if _, ok := tmpl.Field(e.Key); !ok {
				return s, fmt.Errorf("%w: %q in template %s", ErrUnknownField, e.Key, tmpl.ID)
			}
			next := s
			next.Values = maps.Clone(s.Values)
			if next.Values == nil {
				next.Values = map[string]string{}
			}
			next.Values[e.Key] = e.Value
			return next, nil

		case PreviewRequested:
			tmpl, err := current(s, env)
			if err != nil {
				return s, err
			}
			if missing := tmpl.MissingFields(s.Values); len(missing) > 0 {
				return s, &MissingFieldsError{Fields: missing}
			}
			body, err := tmpl.Render(s.Values)
			if err != nil {
				return s, err
			}
			next := s
			next.Step = StepPreview
			next.Preview = body
			return next, nil

		case BackPressed:
			return Initial(), nil
		}

	case StepPreview:
		switch ev.(type) {
		case EditRequested, BackPressed:
			next := s
			next.Step = StepFormFill
			next.Preview = ""
			return next, nil

		case GenerateRequested:
			tmpl, err := current(s, env)
			if err != nil {
				return s, err
			}
			if tmpl.RequiresStampDuty {
				next := s
				next.Step = StepStampDutyPrompt
				next.StampDutyAmount = tmpl.StampDutyAmount
				return next, nil
			}
			return finish(s, tmpl, env, "")
		}

	case StepStampDutyPrompt:
		switch ev.(type) {
		case PayNow:
			next := s
			next.Step = StepPaymentPending
			return next, nil
		case SkipStampDuty:
			tmpl, err := current(s, env)
			if err != nil {
				return s, err
			}
			return finish(s, tmpl, env, "")
		case BackPressed:
			return s, ErrNotDismissible
		}

	case StepPaymentPending:
		switch e := ev.(type) {
		case PaymentConfirmed:
			if strings.TrimSpace(e.Reference) == "" {
				return s, fmt.Errorf("%w: payment confirmation without reference", ErrInvalidTransition)
			}
			tmpl, err := current(s, env)
			if err != nil {
				return s, err
			}
			return finish(s, tmpl, env, e.Reference)
		case PaymentCancelled:
			next := s
			next.Step = StepStampDutyPrompt
			return next, nil
		case BackPressed:
			return s, ErrNotDismissible
		}

	case StepSuccess:
		switch ev.(type) {
		case StartOver, BackPressed:
			return Initial(), nil
		}
	}

	return s, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, ev.name(), s.Step)
}

func current(s State, env Env) (domain.DocumentTemplate, error) {
	tmpl, ok := env.Template(s.TemplateID)
	if !ok {
		return domain.DocumentTemplate{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, s.TemplateID)
	}
	return tmpl, nil
}

func finish(s State, tmpl domain.DocumentTemplate, env Env, stampRef string) (State, error) {
	body, err := tmpl.Render(s.Values)
	if err != nil {
		return s, err
	}

	doc := &domain.GeneratedDocument{
		ID:             env.NewID(),
		TemplateID:     tmpl.ID,
		Title:          tmpl.Title,
		Body:           body,
		Values:         maps.Clone(s.Values),
		Stamped:        stampRef != "",
		StampReference: stampRef,
		CreatedAt:      env.Now(),
	}

	return State{
		Step:       StepSuccess,
		TemplateID: tmpl.ID,
		Values:     doc.Values,
		Preview:    body,
		Document:   doc,
	}, nil
}
