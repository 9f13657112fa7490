package savestate

import (
	"context"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/lawdesk/internal/domain"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
)

// DocumentPersister stores a session's generated documents.
type DocumentPersister interface {
	LoadDocuments(ctx context.Context, sessionID string) ([]domain.GeneratedDocument, error)
	SaveDocuments(ctx context.Context, sessionID string, docs []domain.GeneratedDocument) error
}

// Library holds the documents a session generated, oldest first.
type Library struct {
	mu        sync.RWMutex
	sessionID string
	docs      []domain.GeneratedDocument
	persister DocumentPersister
	logger    logger.Logger
}

// NewLibrary creates an empty library. p may be nil.
func NewLibrary(sessionID string, p DocumentPersister, log logger.Logger) *Library {
	return &Library{
		sessionID: sessionID,
		persister: p,
		logger:    log,
	}
}

// Restore replaces the contents without writing back.
func (l *Library) Restore(docs []domain.GeneratedDocument) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs = slices.Clone(docs)
}

// Add appends doc. A document with the same id replaces the old one in place.
func (l *Library) Add(ctx context.Context, doc domain.GeneratedDocument) {
	l.mu.Lock()
	if i := l.indexLocked(doc.ID); i >= 0 {
		l.docs[i] = doc
	} else {
		l.docs = append(l.docs, doc)
	}
	snapshot := slices.Clone(l.docs)
	l.mu.Unlock()

	l.persist(ctx, snapshot)
}

// Remove deletes a document. Unknown ids are ignored; the return value
// reports whether something was removed.
func (l *Library) Remove(ctx context.Context, id string) bool {
	l.mu.Lock()
	i := l.indexLocked(id)
	if i < 0 {
		l.mu.Unlock()
		return false
	}
	l.docs = slices.Delete(l.docs, i, i+1)
	snapshot := slices.Clone(l.docs)
	l.mu.Unlock()

	l.persist(ctx, snapshot)
	return true
}

// Get looks a document up by id.
func (l *Library) Get(id string) (domain.GeneratedDocument, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.indexLocked(id); i >= 0 {
		return l.docs[i], true
	}
	return domain.GeneratedDocument{}, false
}

// List returns every document, oldest first.
func (l *Library) List() []domain.GeneratedDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.docs)
}

func (l *Library) indexLocked(id string) int {
	return slices.IndexFunc(l.docs, func(d domain.GeneratedDocument) bool { return d.ID == id })
}

func (l *Library) persist(ctx context.Context, docs []domain.GeneratedDocument) {
	if l.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := l.persister.SaveDocuments(ctx, l.sessionID, docs); err != nil {
		l.logger.Warn("failed to persist documents",
			logger.String("session_id", l.sessionID),
			logger.Int("count", len(docs)),
			logger.Error(err))
	}
}
