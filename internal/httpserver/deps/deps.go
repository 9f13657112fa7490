package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/lawdesk/internal/catalog"
	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/session"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time  // for testing, defaults to time.Now
	AllowedHosts   []string          // Host headers allowed to access admin endpoints
	AllowedCIDRS   []string          // IPs allowed to access healthz/readyz/infra/reload
	TrustProxy     bool              // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CatalogSource  string            // where the catalog is loaded from, for /infra
	Catalog        *catalog.Store    // current catalog snapshot
	Sessions       *session.Registry // live user sessions
	RedisClient    *redis.Client     // Redis client connection (nil if persistence disabled)
	ReloadTrigger  chan struct{}     // Channel to trigger manual catalog reload
	RelatedLimit   int               // max related entries on a detail view
	RateBurst      int               // per-client burst on /api
	RatePerMin     int               // per-client refill on /api
	RateMaxEntries int               // tracked clients before an early sweep
}
