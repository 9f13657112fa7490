package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/lawdesk/internal/catalog"
	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/savestate"
	"github.com/MrSnakeDoc/lawdesk/internal/view"
	"github.com/MrSnakeDoc/lawdesk/internal/view/wizard"
)

// trackEvery throttles session header writes on repeated activity.
const trackEvery = time.Minute

// storeTimeout bounds a single call to the store.
const storeTimeout = 2 * time.Second

// Store persists sessions and their data. It is optional.
type Store interface {
	savestate.Persister
	savestate.DocumentPersister

	TrackSession(ctx context.Context, info domain.SessionInfo) error
	GetSession(ctx context.Context, id string) (domain.SessionInfo, bool, error)
	ListSessions(ctx context.Context) ([]domain.SessionInfo, error)
	ForgetSession(ctx context.Context, id string) (bool, error)
}

// Options configure new sessions.
type Options struct {
	SwipeThreshold float64
	Now            func() time.Time
	NewID          func() string
}

// Registry owns every live session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  *catalog.Store
	store    Store
	logger   logger.Logger
	opts     Options
}

// NewRegistry creates an empty registry. store may be nil, in which case
// sessions are memory-only.
func NewRegistry(cat *catalog.Store, store Store, log logger.Logger, opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Registry{
		sessions: make(map[string]*Session),
		catalog:  cat,
		store:    store,
		logger:   log,
		opts:     opts,
	}
}

// Create starts a fresh session.
func (r *Registry) Create(ctx context.Context) *Session {
	now := r.opts.Now()
	s := r.build(domain.SessionInfo{ID: r.opts.NewID(), CreatedAt: now, LastActive: now})
	s.touch(now, 0)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.track(ctx, s.Info())
	r.logger.Debug("session created", logger.String("session_id", s.ID))
	return s
}

// Get returns a session and marks it active. A session that is not in
// memory is restored from the store when the store knows it.
func (r *Registry) Get(ctx context.Context, id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		var err error
		s, ok, err = r.restoreFromStore(ctx, id)
		if err != nil {
			r.logger.Warn("failed to restore session",
				logger.String("session_id", id),
				logger.Error(err))
		}
		if !ok {
			return nil, false
		}
	}

	if s.touch(r.opts.Now(), trackEvery) {
		r.track(ctx, s.Info())
	}
	return s, true
}

// Delete ends a session and forgets everything stored for it. It reports
// whether the session existed in memory or in the store.
func (r *Registry) Delete(ctx context.Context, id string) bool {
	removed := r.Evict(id)
	if r.store == nil {
		return removed
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	stored, err := r.store.ForgetSession(ctx, id)
	if err != nil {
		r.logger.Warn("failed to forget session",
			logger.String("session_id", id),
			logger.Error(err))
	}
	return removed || stored
}

// Evict drops a session from memory only; its stored data stays.
func (r *Registry) Evict(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Restore loads a known session from the store into memory. Restoring a
// session that is already live returns the live one.
func (r *Registry) Restore(ctx context.Context, info domain.SessionInfo) (*Session, error) {
	r.mu.RLock()
	live, ok := r.sessions[info.ID]
	r.mu.RUnlock()
	if ok {
		return live, nil
	}

	s := r.build(info)
	s.touch(info.LastActive, trackEvery)

	if r.store != nil {
		marks, err := r.store.LoadMarks(ctx, info.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load saved marks for %s: %w", info.ID, err)
		}
		docs, err := r.store.LoadDocuments(ctx, info.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load documents for %s: %w", info.ID, err)
		}
		s.Saved.Restore(marks)
		s.Documents.Restore(docs)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if live, ok := r.sessions[info.ID]; ok {
		return live, nil
	}
	r.sessions[info.ID] = s
	return s, nil
}

// All returns the live sessions, oldest first.
func (r *Registry) All() []*Session {
	r.mu.RLock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// RefreshViews recomputes every browse screen, e.g. after a catalog reload.
func (r *Registry) RefreshViews() {
	for _, s := range r.All() {
		s.Laws.Refresh()
		s.Cases.Refresh()
	}
}

func (r *Registry) build(info domain.SessionInfo) *Session {
	viewOpts := view.Options{SwipeThreshold: r.opts.SwipeThreshold}
	log := r.logger.With(logger.String("session_id", info.ID))

	var (
		marks savestate.Persister
		docs  savestate.DocumentPersister
	)
	if r.store != nil {
		marks, docs = r.store, r.store
	}

	s := &Session{
		ID:            info.ID,
		CreatedAt:     info.CreatedAt,
		Saved:         savestate.NewManager(info.ID, marks, log),
		Documents:     savestate.NewLibrary(info.ID, docs, log),
		Laws:          view.NewController(view.LawSource(r.catalog), viewOpts),
		Cases:         view.NewController(view.CaseSource(r.catalog), viewOpts),
		DocumentsTabs: view.NewPager(view.DocumentTabs, viewOpts),
	}
	s.Saved.SetClock(r.opts.Now)

	s.Wizard = wizard.NewFlow(wizard.Env{
		Template: r.catalog.Template,
		Now:      r.opts.Now,
		NewID:    r.opts.NewID,
	}, func(ctx context.Context, doc domain.GeneratedDocument) {
		s.Documents.Add(ctx, doc)
		log.Info("document generated",
			logger.String("document_id", doc.ID),
			logger.String("template_id", doc.TemplateID),
			logger.Bool("stamped", doc.Stamped))
	})

	return s
}

func (r *Registry) restoreFromStore(ctx context.Context, id string) (*Session, bool, error) {
	if r.store == nil {
		return nil, false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	info, found, err := r.store.GetSession(ctx, id)
	if err != nil || !found {
		return nil, false, err
	}

	s, err := r.Restore(ctx, info)
	if err != nil {
		return nil, false, err
	}
	r.logger.Info("session restored from store", logger.String("session_id", id))
	return s, true, nil
}

func (r *Registry) track(ctx context.Context, info domain.SessionInfo) {
	if r.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()

	if err := r.store.TrackSession(ctx, info); err != nil {
		r.logger.Warn("failed to track session",
			logger.String("session_id", info.ID),
			logger.Error(err))
	}
}
