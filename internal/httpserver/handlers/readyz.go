package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/lawdesk/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool `json:"ready"`
	Entries int  `json:"entries"`
}

// Readyz is ready once a catalog with at least one entry is being served.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := d.Catalog.Count()
		status := http.StatusOK
		if entries == 0 {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:   entries > 0,
			Entries: entries,
		})
	}
}
