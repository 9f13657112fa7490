package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func testEnv() Env {
	templates := map[string]domain.DocumentTemplate{
		"rent": {
			ID:    "rent",
			Title: "Rent Agreement",
			Fields: []domain.TemplateField{
				{Key: "landlord", Label: "Landlord", Required: true},
				{Key: "tenant", Label: "Tenant", Required: true},
				{Key: "notes", Label: "Notes"},
			},
			Body:              "Between {{.landlord}} and {{.tenant}}.",
			RequiresStampDuty: true,
			StampDutyAmount:   500,
		},
		"notice": {
			ID:     "notice",
			Title:  "Legal Notice",
			Fields: []domain.TemplateField{{Key: "to", Label: "To", Required: true}},
			Body:   "To {{.to}}",
		},
	}
	return Env{
		Template: func(id string) (domain.DocumentTemplate, bool) {
			t, ok := templates[id]
			return t, ok
		},
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { return "doc-1" },
	}
}

func run(t *testing.T, env Env, events ...Event) State {
	t.Helper()
	s := Initial()
	for _, ev := range events {
		var err error
		s, err = Transition(s, ev, env)
		require.NoError(t, err, "event %T at %s", ev, s.Step)
	}
	return s
}

func fillRent() []Event {
	return []Event{
		TemplateChosen{ID: "rent"},
		FieldChanged{Key: "landlord", Value: "A. Rao"},
		FieldChanged{Key: "tenant", Value: "B. Shah"},
	}
}

func TestStampDutyTemplateEntersPrompt(t *testing.T) {
	env := testEnv()
	s := run(t, env, append(fillRent(), PreviewRequested{}, GenerateRequested{})...)

	assert.Equal(t, StepStampDutyPrompt, s.Step)
	assert.Equal(t, 500.0, s.StampDutyAmount)
	assert.Nil(t, s.Document)
}

func TestNoStampDutyTemplateSkipsPrompt(t *testing.T) {
	env := testEnv()
	s := run(t, env,
		TemplateChosen{ID: "notice"},
		FieldChanged{Key: "to", Value: "XYZ Builders"},
		PreviewRequested{},
		GenerateRequested{},
	)

	assert.Equal(t, StepSuccess, s.Step)
	require.NotNil(t, s.Document)
	assert.Equal(t, "To XYZ Builders", s.Document.Body)
	assert.False(t, s.Document.Stamped)
	assert.Equal(t, fixedNow, s.Document.CreatedAt)
}

func TestPayThenConfirm(t *testing.T) {
	env := testEnv()
	s := run(t, env, append(fillRent(),
		PreviewRequested{}, GenerateRequested{}, PayNow{}, PaymentConfirmed{Reference: "GRN-42"})...)

	assert.Equal(t, StepSuccess, s.Step)
	require.NotNil(t, s.Document)
	assert.True(t, s.Document.Stamped)
	assert.Equal(t, "GRN-42", s.Document.StampReference)
	assert.Equal(t, "Between A. Rao and B. Shah.", s.Document.Body)
}

func TestSkipStampDuty(t *testing.T) {
	env := testEnv()
	s := run(t, env, append(fillRent(), PreviewRequested{}, GenerateRequested{}, SkipStampDuty{})...)

	assert.Equal(t, StepSuccess, s.Step)
	assert.False(t, s.Document.Stamped)
}

func TestPaymentCancelledReturnsToPrompt(t *testing.T) {
	env := testEnv()
	s := run(t, env, append(fillRent(), PreviewRequested{}, GenerateRequested{}, PayNow{}, PaymentCancelled{})...)
	assert.Equal(t, StepStampDutyPrompt, s.Step)
}

func TestStampDutyStepsAreNotDismissible(t *testing.T) {
	env := testEnv()
	prompt := run(t, env, append(fillRent(), PreviewRequested{}, GenerateRequested{})...)
	pending := run(t, env, append(fillRent(), PreviewRequested{}, GenerateRequested{}, PayNow{})...)

	for _, s := range []State{prompt, pending} {
		got, err := Transition(s, BackPressed{}, env)
		assert.ErrorIs(t, err, ErrNotDismissible)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, s.Step, got.Step)

		_, err = Transition(s, StartOver{}, env)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestPaymentConfirmationNeedsReference(t *testing.T) {
	env := testEnv()
	s := run(t, env, append(fillRent(), PreviewRequested{}, GenerateRequested{}, PayNow{})...)

	_, err := Transition(s, PaymentConfirmed{Reference: " "}, env)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPreviewRequiresFields(t *testing.T) {
	env := testEnv()
	s := run(t, env, TemplateChosen{ID: "rent"}, FieldChanged{Key: "tenant", Value: "B"})

	got, err := Transition(s, PreviewRequested{}, env)
	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"landlord"}, missing.Fields)
	assert.Equal(t, StepFormFill, got.Step)
}

func TestEditAfterPreviewKeepsValues(t *testing.T) {
	env := testEnv()
	s := run(t, env, append(fillRent(), PreviewRequested{}, EditRequested{},
		FieldChanged{Key: "tenant", Value: "C. Iyer"}, PreviewRequested{})...)

	assert.Equal(t, StepPreview, s.Step)
	assert.Equal(t, "Between A. Rao and C. Iyer.", s.Preview)
}

func TestFieldChangedDoesNotMutateInput(t *testing.T) {
	env := testEnv()
	s := run(t, env, TemplateChosen{ID: "rent"}, FieldChanged{Key: "tenant", Value: "B"})

	_, err := Transition(s, FieldChanged{Key: "tenant", Value: "Z"}, env)
	require.NoError(t, err)
	assert.Equal(t, "B", s.Values["tenant"])
}

func TestInvalidTransitions(t *testing.T) {
	env := testEnv()

	tests := []struct {
		name string
		from State
		ev   Event
		want error
	}{
		{"unknown template", Initial(), TemplateChosen{ID: "will"}, ErrUnknownTemplate},
		{"generate from list", Initial(), GenerateRequested{}, ErrInvalidTransition},
		{"back from list", Initial(), BackPressed{}, ErrInvalidTransition},
		{"unknown field", run(t, env, TemplateChosen{ID: "rent"}), FieldChanged{Key: "dog"}, ErrUnknownField},
		{"generate before preview", run(t, env, fillRent()...), GenerateRequested{}, ErrInvalidTransition},
		{"pay without prompt", run(t, env, fillRent()...), PayNow{}, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev, env)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestBackNavigation(t *testing.T) {
	env := testEnv()

	s := run(t, env, append(fillRent(), PreviewRequested{}, BackPressed{})...)
	assert.Equal(t, StepFormFill, s.Step)
	assert.Equal(t, "A. Rao", s.Values["landlord"])

	s = run(t, env, TemplateChosen{ID: "rent"}, BackPressed{})
	assert.Equal(t, Initial(), s)
}

func TestFlowCompletesOnce(t *testing.T) {
	var docs []domain.GeneratedDocument
	f := NewFlow(testEnv(), func(_ context.Context, doc domain.GeneratedDocument) {
		docs = append(docs, doc)
	})

	ctx := context.Background()
	for _, ev := range []Event{
		TemplateChosen{ID: "notice"},
		FieldChanged{Key: "to", Value: "X"},
		PreviewRequested{},
		GenerateRequested{},
	} {
		_, err := f.Dispatch(ctx, ev)
		require.NoError(t, err)
	}

	_, err := f.Dispatch(ctx, GenerateRequested{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].ID)

	s, err := f.Dispatch(ctx, StartOver{})
	require.NoError(t, err)
	assert.Equal(t, StepTemplateList, s.Step)
	assert.Equal(t, StepTemplateList, f.State().Step)
}

func TestFlowDefaultsIDs(t *testing.T) {
	env := testEnv()
	env.NewID = nil
	env.Now = nil

	var got domain.GeneratedDocument
	f := NewFlow(env, func(_ context.Context, doc domain.GeneratedDocument) { got = doc })

	ctx := context.Background()
	for _, ev := range []Event{
		TemplateChosen{ID: "notice"},
		FieldChanged{Key: "to", Value: "X"},
		PreviewRequested{},
		GenerateRequested{},
	} {
		_, err := f.Dispatch(ctx, ev)
		require.NoError(t, err)
	}

	assert.Len(t, got.ID, 36)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"field_changed","key":"tenant","value":"B"}`))
	require.NoError(t, err)
	assert.Equal(t, FieldChanged{Key: "tenant", Value: "B"}, ev)

	ev, err = DecodeEvent([]byte(`{"type":"payment_confirmed","reference":"GRN-1"}`))
	require.NoError(t, err)
	assert.Equal(t, PaymentConfirmed{Reference: "GRN-1"}, ev)

	_, err = DecodeEvent([]byte(`{"type":"print"}`))
	assert.Error(t, err)
}
