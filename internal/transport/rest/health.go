package rest

import (
	"context"
	"net/http"
	"time"
)

// probeTimeout bounds each dependency check.
const probeTimeout = 3 * time.Second

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// ledgerStats reports the size and freshness of the stored ledger.
type ledgerStats interface {
	Count(ctx context.Context) (int64, error)
	LastCreatedOn(ctx context.Context) (*time.Time, error)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	ledger  ledgerStats
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, ledger ledgerStats, version string) *HealthHandler {
	return &HealthHandler{db: db, ledger: ledger, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status      string  `json:"status"`
	Latency     string  `json:"latency,omitempty"`
	Entries     *int64  `json:"entries,omitempty"`
	LastUpdated *string `json:"lastUpdated,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: DB latency, ledger size and date of the
// newest imported entry, plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]CompStatus)
	overallStatus := "ok"

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		components["database"] = CompStatus{Status: "down"}
		overallStatus = "down"
	} else {
		components["database"] = CompStatus{
			Status:  "ok",
			Latency: latency.String(),
		}
		components["ledger"] = h.ledgerStatus(ctx)
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// ledgerStatus is informational and never marks the service down.
func (h *HealthHandler) ledgerStatus(ctx context.Context) CompStatus {
	n, err := h.ledger.Count(ctx)
	if err != nil {
		return CompStatus{Status: "unknown"}
	}
	last, err := h.ledger.LastCreatedOn(ctx)
	if err != nil {
		return CompStatus{Status: "unknown"}
	}

	cs := CompStatus{Status: "ok", Entries: &n, LastUpdated: formatDate(last)}
	if n == 0 {
		cs.Status = "empty"
	}
	return cs
}
