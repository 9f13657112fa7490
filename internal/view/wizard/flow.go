package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
)

// CompleteFunc receives every document the wizard finishes.
type CompleteFunc func(ctx context.Context, doc domain.GeneratedDocument)

// Flow is a session's running wizard.
type Flow struct {
	mu         sync.Mutex
	state      State
	env        Env
	onComplete CompleteFunc
}

// NewFlow starts at the template picker. Missing Now and NewID default to
// the wall clock and random UUIDs.
func NewFlow(env Env, onComplete CompleteFunc) *Flow {
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.NewID == nil {
		env.NewID = uuid.NewString
	}
	return &Flow{state: Initial(), env: env, onComplete: onComplete}
}

// Dispatch applies ev. Reaching Success hands the document to the
// completion callback before returning.
func (f *Flow) Dispatch(ctx context.Context, ev Event) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := Transition(f.state, ev, f.env)
	if err != nil {
		return f.state, err
	}

	entered := next.Step == StepSuccess && f.state.Step != StepSuccess
	f.state = next
	if entered && next.Document != nil && f.onComplete != nil {
		f.onComplete(ctx, *next.Document)
	}
	return f.state, nil
}

// State returns the current step.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
