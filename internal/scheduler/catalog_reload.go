package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/lawdesk/internal/catalog"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/sources/seed"
)

// CatalogReloader handles periodic reloading of the catalog file
type CatalogReloader struct {
	loader        *seed.Loader
	mapper        *seed.Mapper
	store         *catalog.Store
	onReload      func()
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader. An empty catalogFile
// reloads the embedded catalog. onReload, if set, runs after every
// successful swap. interval <= 0 disables the ticker; manual triggers still
// work.
func NewCatalogReloader(
	catalogFile string,
	store *catalog.Store,
	onReload func(),
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        seed.NewLoader(catalogFile),
		mapper:        seed.NewMapper(),
		store:         store,
		onReload:      onReload,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog once, then keeps reloading in the background
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	var tick <-chan time.Time
	var ticker *time.Ticker
	if cr.interval > 0 {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads, maps and validates the catalog, then swaps it in. A bad
// file leaves the previous catalog serving.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cr.logger.Info("reloading catalog",
		logger.String("source", cr.loader.Source()))

	file, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	snap, err := cr.mapper.MapCatalog(file)
	if err != nil {
		return fmt.Errorf("failed to map catalog: %w", err)
	}

	if err := cr.store.Replace(snap); err != nil {
		return err
	}

	cr.logger.Info("catalog loaded",
		logger.Int("entries", cr.store.Count()),
		logger.Int("templates", len(snap.Templates)),
		logger.Int("states", len(cr.store.States())))

	if cr.onReload != nil {
		cr.onReload()
	}

	return nil
}
