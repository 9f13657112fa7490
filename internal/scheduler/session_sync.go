package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
)

// SessionSyncer warms the registry from the store on startup
type SessionSyncer struct {
	store    session.Store
	registry *session.Registry
	logger   logger.Logger
}

// NewSessionSyncer creates a new session syncer
func NewSessionSyncer(
	store session.Store,
	registry *session.Registry,
	log logger.Logger,
) *SessionSyncer {
	return &SessionSyncer{
		store:    store,
		registry: registry,
		logger:   log,
	}
}

// Sync loads every stored session into memory. Sessions that fail to load
// are skipped; they can still be restored on demand.
func (ss *SessionSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("syncing sessions from redis to memory")

	infos, err := ss.store.ListSessions(ctx)
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		ss.logger.Info("no sessions found in redis")
		return nil
	}

	restored := 0
	for _, info := range infos {
		if _, err := ss.registry.Restore(ctx, info); err != nil {
			ss.logger.Warn("failed to restore session",
				logger.String("session_id", info.ID),
				logger.Error(err))
			continue
		}
		restored++
	}

	ss.logger.Info("synced sessions from redis",
		logger.Int("count", restored))

	return nil
}
