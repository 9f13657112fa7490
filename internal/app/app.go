package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/lawdesk/internal/catalog"
	"github.com/MrSnakeDoc/lawdesk/internal/config"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver"
	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/redis"
	"github.com/MrSnakeDoc/lawdesk/internal/scheduler"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
	redisstore "github.com/MrSnakeDoc/lawdesk/internal/store/redis"
	"github.com/MrSnakeDoc/lawdesk/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	catalog     *catalog.Store
	sessions    *session.Registry
	syncer      *scheduler.SessionSyncer
	reloader    *scheduler.CatalogReloader
	collector   *scheduler.SessionCollector
}

// New wires every component from cfg. Redis is optional: with no address
// configured sessions live in memory only.
func New(cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	var (
		redisClient *goredis.Client
		store       session.Store // stays a nil interface when Redis is disabled
	)
	opts := redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
	if opts.Enabled() {
		// Fail fast: a configured but unreachable Redis is a deployment error.
		client, err := redis.Connect(context.Background(), opts, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		store = redisstore.NewStore(client, cfg.SessionTTL)
		loggerClient.Info("Redis initialized successfully")
	} else {
		loggerClient.Info("redis not configured, sessions are memory-only")
	}

	cat := catalog.NewStore()

	sessions := session.NewRegistry(cat, store, loggerClient, session.Options{
		SwipeThreshold: cfg.SwipeThreshold,
	})

	var syncer *scheduler.SessionSyncer
	if store != nil {
		syncer = scheduler.NewSessionSyncer(store, sessions, loggerClient)
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		cfg.CatalogFile,
		cat,
		sessions.RefreshViews,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	collector := scheduler.NewSessionCollector(
		sessions,
		loggerClient,
		cfg.GCInterval,
		cfg.SessionIdle,
	)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		CatalogSource:  cfg.CatalogFile,
		Catalog:        cat,
		Sessions:       sessions,
		RedisClient:    redisClient,
		ReloadTrigger:  reloadTrigger,
		RelatedLimit:   cfg.RelatedLimit,
		RateBurst:      cfg.RateBurst,
		RatePerMin:     cfg.RatePerMin,
		RateMaxEntries: cfg.RateMaxEntries,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		catalog:     cat,
		sessions:    sessions,
		syncer:      syncer,
		reloader:    reloader,
		collector:   collector,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting LawDesk v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("LawDesk %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (loads the catalog and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Int("entries", a.catalog.Count()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Bring stored sessions back once the catalog is in place
	if a.syncer != nil {
		if err := a.syncer.Sync(ctx); err != nil {
			a.logger.Warn("failed to restore sessions from redis on startup, they will restore on first use",
				logger.Error(err))
		}
	}

	// Start idle-session collector
	if err := a.collector.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session collector: %w", err)
	}
	a.logger.Info("session collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("idle", a.cfg.SessionIdle))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		a.collector.Stop()
		return err
	}

	a.reloader.Stop()
	a.collector.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ LawDesk stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
