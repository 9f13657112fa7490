package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline (ex: 5s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogFile    string        // path to the catalog YAML; empty = embedded catalog
	ReloadInterval time.Duration // interval to reload the catalog (0 = manual only)

	SwipeThreshold float64       // release delta needed to change tab (default: 50)
	RelatedLimit   int           // max related entries on a detail view (default: 5)
	SessionIdle    time.Duration // evict sessions idle this long from memory (default: 2h)
	GCInterval     time.Duration // interval to run the idle-session collector (default: 10m)
	SessionTTL     time.Duration // lifetime of persisted session data in Redis (default: 30 days)

	// Rate limiting on /api
	RateBurst      int // tokens per client
	RatePerMin     int // refill per client per minute
	RateMaxEntries int // tracked clients before an early sweep

	// Redis (optional)
	RedisAddr             string        // ex: "localhost:6379"; empty disables persistence
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict admin endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LAWDESK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LAWDESK_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("LAWDESK_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LAWDESK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LAWDESK_PRETTY_LOG", true),

		// Catalog
		CatalogFile:    getenv("LAWDESK_CATALOG_FILE", ""),
		ReloadInterval: mustDuration("LAWDESK_RELOAD_INTERVAL", 10*time.Minute),

		// Sessions and views
		SwipeThreshold: mustFloat("LAWDESK_SWIPE_THRESHOLD", 50),
		RelatedLimit:   getenvInt("LAWDESK_RELATED_LIMIT", 5),
		SessionIdle:    mustDuration("LAWDESK_SESSION_IDLE", 2*time.Hour),
		GCInterval:     mustDuration("LAWDESK_GC_INTERVAL", 10*time.Minute),
		SessionTTL:     mustDuration("LAWDESK_SESSION_TTL", 30*24*time.Hour),

		// Rate limiting
		RateBurst:      getenvInt("LAWDESK_RATE_BURST", 60),
		RatePerMin:     getenvInt("LAWDESK_RATE_PER_MIN", 120),
		RateMaxEntries: getenvInt("LAWDESK_RATE_MAX_ENTRIES", 10000),

		// Redis settings
		RedisAddr:             getenv("LAWDESK_REDIS_ADDR", ""),
		RedisUser:             getenv("LAWDESK_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("LAWDESK_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("LAWDESK_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LAWDESK_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LAWDESK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("LAWDESK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LAWDESK_TRUST_PROXY", false),
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired {
		cfg.RedisPassword = requireEnv("LAWDESK_REDIS_PASSWORD")
	}

	if cfg.SwipeThreshold <= 0 {
		panic(fmt.Sprintf("❌ FATAL: LAWDESK_SWIPE_THRESHOLD must be > 0, got %v", cfg.SwipeThreshold))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
