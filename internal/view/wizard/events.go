package wizard

import (
	"encoding/json"
	"fmt"
)

// Event is an input to the document wizard.
type Event interface {
	wizardEvent()
	name() string
}

type (
	TemplateChosen    struct{ ID string }
	FieldChanged      struct{ Key, Value string }
	PreviewRequested  struct{}
	EditRequested     struct{}
	GenerateRequested struct{}
	// PayNow hands off to the external payment flow.
	PayNow struct{}
	// PaymentConfirmed is delivered by the payment flow on success.
	PaymentConfirmed struct{ Reference string }
	PaymentCancelled struct{}
	SkipStampDuty    struct{}
	StartOver        struct{}
	BackPressed      struct{}
)

func (TemplateChosen) wizardEvent()    {}
func (FieldChanged) wizardEvent()      {}
func (PreviewRequested) wizardEvent()  {}
func (EditRequested) wizardEvent()     {}
func (GenerateRequested) wizardEvent() {}
func (PayNow) wizardEvent()            {}
func (PaymentConfirmed) wizardEvent()  {}
func (PaymentCancelled) wizardEvent()  {}
func (SkipStampDuty) wizardEvent()     {}
func (StartOver) wizardEvent()         {}
func (BackPressed) wizardEvent()       {}

func (TemplateChosen) name() string    { return "template_chosen" }
func (FieldChanged) name() string      { return "field_changed" }
func (PreviewRequested) name() string  { return "preview_requested" }
func (EditRequested) name() string     { return "edit_requested" }
func (GenerateRequested) name() string { return "generate_requested" }
func (PayNow) name() string            { return "pay_now" }
func (PaymentConfirmed) name() string  { return "payment_confirmed" }
func (PaymentCancelled) name() string  { return "payment_cancelled" }
func (SkipStampDuty) name() string     { return "skip_stamp_duty" }
func (StartOver) name() string         { return "start_over" }
func (BackPressed) name() string       { return "back_pressed" }

// Envelope is the wire form of a wizard event.
type Envelope struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	Key       string `json:"key,omitempty"`
	Value     string `json:"value,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// DecodeEvent parses one JSON envelope.
func DecodeEvent(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode wizard event: %w", err)
	}

	switch env.Type {
	case "template_chosen":
		return TemplateChosen{ID: env.ID}, nil
	case "field_changed":
		return FieldChanged{Key: env.Key, Value: env.Value}, nil
	case "preview_requested":
		return PreviewRequested{}, nil
	case "edit_requested":
		return EditRequested{}, nil
	case "generate_requested":
		return GenerateRequested{}, nil
	case "pay_now":
		return PayNow{}, nil
	case "payment_confirmed":
		return PaymentConfirmed{Reference: env.Reference}, nil
	case "payment_cancelled":
		return PaymentCancelled{}, nil
	case "skip_stamp_duty":
		return SkipStampDuty{}, nil
	case "start_over":
		return StartOver{}, nil
	case "back_pressed":
		return BackPressed{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidTransition, env.Type)
	}
}
