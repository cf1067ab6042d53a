package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"ftp-m3u/internal/startup"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Ready    bool   `json:"ready"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`

	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	TotalServers   int `json:"totalServers"`
	TotalPlaylists int `json:"totalPlaylists"`
	CachedSearches int `json:"cachedSearches"`
}

func (h *Handlers) databaseReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.db.Ping(ctx)
}

// HealthCheck reports service status, returning 503 when the database is
// unreachable.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        true,
		Version:      startup.Version,
		Uptime:       time.Since(h.startedAt).Round(time.Second).String(),
		Database:     "ok",
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	statusCode := http.StatusOK
	if err := h.databaseReady(r.Context()); err != nil {
		response.Status = statusUnhealthy
		response.Ready = false
		response.Database = err.Error()
		statusCode = http.StatusServiceUnavailable
	} else {
		stats := h.db.GetStats()
		response.TotalServers = stats.TotalServers
		response.TotalPlaylists = stats.TotalPlaylists
		response.CachedSearches = h.search.CachedSearches()
	}

	writeJSONStatusCode(w, statusCode, response)
}

// APIHealth is the minimal health route used by the web client.
func (h *Handlers) APIHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "ok"})
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}

// ReadinessCheck returns 200 only when the database answers.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.databaseReady(r.Context()); err != nil {
		writeJSONStatusCode(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSONStatusCode(w, http.StatusOK, map[string]string{"status": "ready"})
}
