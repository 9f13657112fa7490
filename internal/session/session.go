package session

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/savestate"
	"github.com/MrSnakeDoc/lawdesk/internal/view"
	"github.com/MrSnakeDoc/lawdesk/internal/view/wizard"
)

// Session is one user's app state: bookmarks, generated documents and the
// state of every screen. It lives from Create until Delete or eviction.
type Session struct {
	ID        string
	CreatedAt time.Time

	Saved     *savestate.Manager
	Documents *savestate.Library

	Laws          *view.Controller[domain.Law]
	Cases         *view.Controller[domain.Case]
	DocumentsTabs *view.Pager
	Wizard        *wizard.Flow

	events sync.Mutex

	mu          sync.Mutex
	lastActive  time.Time
	lastTracked time.Time
}

// Do runs fn while holding the session's event lock, so UI events of one
// session are applied one at a time.
func (s *Session) Do(fn func() error) error {
	s.events.Lock()
	defer s.events.Unlock()
	return fn()
}

// LastActive returns when the session was last used.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Info returns the persisted header.
func (s *Session) Info() domain.SessionInfo {
	return domain.SessionInfo{ID: s.ID, CreatedAt: s.CreatedAt, LastActive: s.LastActive()}
}

// touch records activity and reports whether the store should be told.
func (s *Session) touch(now time.Time, every time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = now
	if now.Sub(s.lastTracked) < every {
		return false
	}
	s.lastTracked = now
	return true
}
