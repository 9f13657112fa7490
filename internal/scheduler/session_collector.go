package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
)

const (
	// DefaultIdleThreshold is how long a session may sit unused before it is evicted from memory
	DefaultIdleThreshold = 2 * time.Hour
)

// SessionCollector evicts idle sessions from memory. Their persisted data,
// if any, stays in the store and is restored on the next request.
type SessionCollector struct {
	registry  *session.Registry
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewSessionCollector creates a new session collector. interval <= 0
// collects once on Start and never again.
func NewSessionCollector(
	registry *session.Registry,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *SessionCollector {
	if threshold == 0 {
		threshold = DefaultIdleThreshold
	}

	return &SessionCollector{
		registry:  registry,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic collection process
func (sc *SessionCollector) Start(ctx context.Context) error {
	// Run immediately on start
	sc.Collect(ctx)

	if sc.interval <= 0 {
		sc.logger.Warn("session collector interval disabled, idle sessions stay in memory",
			logger.Duration("interval", sc.interval))
		return nil
	}

	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sc.Collect(ctx)
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (sc *SessionCollector) Stop() {
	close(sc.stopCh)
}

// Collect evicts every session idle for longer than the threshold and
// returns how many were evicted.
func (sc *SessionCollector) Collect(ctx context.Context) int {
	now := sc.now()
	evicted := 0

	for _, s := range sc.registry.All() {
		if ctx.Err() != nil {
			break
		}

		idle := now.Sub(s.LastActive())
		if idle < sc.threshold {
			continue
		}

		if sc.registry.Evict(s.ID) {
			sc.logger.Debug("evicted idle session",
				logger.String("session_id", s.ID),
				logger.Duration("idle_for", idle))
			evicted++
		}
	}

	if evicted > 0 {
		sc.logger.Info("session collection completed",
			logger.Int("evicted", evicted),
			logger.Int("live", sc.registry.Count()))
	} else {
		sc.logger.Debug("no idle sessions to collect")
	}

	return evicted
}
