package savestate

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
)

// persistTimeout bounds a single best-effort write to the persister.
const persistTimeout = 2 * time.Second

// Persister stores a session's marks as a flat list of records.
type Persister interface {
	LoadMarks(ctx context.Context, sessionID string) ([]domain.SavedMark, error)
	SaveMarks(ctx context.Context, sessionID string, marks []domain.SavedMark) error
}

// Manager tracks which catalog entries a session has bookmarked.
//
// Marks are kept in save order. A nil persister keeps them in memory only;
// persistence failures are logged and never reach the caller.
type Manager struct {
	mu        sync.RWMutex
	sessionID string
	marks     []domain.SavedMark
	saved     map[string]struct{}
	persister Persister
	logger    logger.Logger
	now       func() time.Time
}

// NewManager creates an empty manager for one session.
func NewManager(sessionID string, p Persister, log logger.Logger) *Manager {
	return &Manager{
		sessionID: sessionID,
		saved:     make(map[string]struct{}),
		persister: p,
		logger:    log,
		now:       time.Now,
	}
}

// SetClock replaces the time source. Tests only.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Restore replaces the marks with a previously persisted list, keeping at
// most one mark per entry and ordering by SavedAt. It does not write back.
func (m *Manager) Restore(marks []domain.SavedMark) {
	ordered := slices.Clone(marks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SavedAt.Before(ordered[j].SavedAt)
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	m.marks = make([]domain.SavedMark, 0, len(ordered))
	m.saved = make(map[string]struct{}, len(ordered))
	for _, mark := range ordered {
		if _, dup := m.saved[mark.EntryID]; dup {
			continue
		}
		m.saved[mark.EntryID] = struct{}{}
		m.marks = append(m.marks, mark)
	}
}

// IsSaved reports whether entryID is bookmarked.
func (m *Manager) IsSaved(entryID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.saved[entryID]
	return ok
}

// Toggle saves e if it is not saved and removes it otherwise.
// It returns whether e is saved afterwards.
func (m *Manager) Toggle(ctx context.Context, e domain.Entry) bool {
	id := e.Card().ID

	m.mu.Lock()
	var saved bool
	if _, ok := m.saved[id]; ok {
		m.removeLocked(id)
	} else {
		m.addLocked(domain.NewSavedMark(e, m.now()))
		saved = true
	}
	snapshot := slices.Clone(m.marks)
	m.mu.Unlock()

	m.persist(ctx, snapshot)
	return saved
}

// Save bookmarks e. Saving an already saved entry changes nothing.
func (m *Manager) Save(ctx context.Context, e domain.Entry) {
	id := e.Card().ID

	m.mu.Lock()
	if _, ok := m.saved[id]; ok {
		m.mu.Unlock()
		return
	}
	m.addLocked(domain.NewSavedMark(e, m.now()))
	snapshot := slices.Clone(m.marks)
	m.mu.Unlock()

	m.persist(ctx, snapshot)
}

// Unsave removes the mark for entryID. Removing an absent id is a no-op.
func (m *Manager) Unsave(ctx context.Context, entryID string) {
	m.mu.Lock()
	if _, ok := m.saved[entryID]; !ok {
		m.mu.Unlock()
		return
	}
	m.removeLocked(entryID)
	snapshot := slices.Clone(m.marks)
	m.mu.Unlock()

	m.persist(ctx, snapshot)
}

// List returns the marks in save order, oldest first.
func (m *Manager) List() []domain.SavedMark {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.marks)
}

// Count returns the number of saved entries.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.marks)
}

func (m *Manager) addLocked(mark domain.SavedMark) {
	m.saved[mark.EntryID] = struct{}{}
	m.marks = append(m.marks, mark)
}

func (m *Manager) removeLocked(entryID string) {
	delete(m.saved, entryID)
	m.marks = slices.DeleteFunc(m.marks, func(mark domain.SavedMark) bool {
		return mark.EntryID == entryID
	})
}

func (m *Manager) persist(ctx context.Context, marks []domain.SavedMark) {
	if m.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := m.persister.SaveMarks(ctx, m.sessionID, marks); err != nil {
		m.logger.Warn("failed to persist saved marks",
			logger.String("session_id", m.sessionID),
			logger.Int("count", len(marks)),
			logger.Error(err))
	}
}
