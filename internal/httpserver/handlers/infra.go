package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	EntriesLoaded *int   `json:"entries_loaded,omitempty"`
	States        *int   `json:"states,omitempty"`
	Templates     *int   `json:"templates,omitempty"`
	Live          *int   `json:"live,omitempty"`
	Source        string `json:"source,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

// Infra reports the state of the catalog, persistence and sessions.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		entries := d.Catalog.Count()
		states := len(d.Catalog.States())
		templates := len(d.Catalog.Templates())
		lastReload := d.Catalog.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		source := d.CatalogSource
		if source == "" {
			source = "embedded"
		}

		live := d.Sessions.Count()

		components := map[string]componentStatus{
			"catalog": {
				OK:            entries > 0,
				EntriesLoaded: &entries,
				States:        &states,
				Templates:     &templates,
				Source:        source,
				LastReload:    lastReloadStr,
			},
			"redis": checkRedis(r.Context(), d),
			"sessions": {
				OK:   true,
				Live: &live,
			},
		}

		response := infraResponse{
			ServingMode: determineServingMode(components),
			Components:  components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineServingMode(components map[string]componentStatus) string {
	if catalog, exists := components["catalog"]; exists && !catalog.OK {
		return "critical" // nothing to browse
	}

	if redis, exists := components["redis"]; exists {
		if !redis.OK {
			return "degraded" // stored sessions unreachable
		}
		if redis.Mode == "memory-only" {
			return "memory-only"
		}
	}

	return "persistent"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "memory-only",
			Impact: "sessions-lost-on-restart",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "session-persistence-failing",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "session-persistence-enabled",
	}
}
