// Package http provides the HTTP server plumbing shared by the API handlers:
// health and readiness probes, Prometheus metrics, access logging, panic
// recovery, timeouts, input limits and per-IP throttling.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"blog-api/internal/handler/http/respond"
	"blog-api/internal/observability/logging"
	"blog-api/internal/observability/metrics"
)

// Probe outcomes, worst last.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

const (
	healthBudget = 5 * time.Second
	readyBudget  = 2 * time.Second

	// poolBusyRatio marks the pool degraded once this share of MaxOpenConnections is in use.
	poolBusyRatio = 0.8
)

// HealthReport is the body of GET /health.
type HealthReport struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check is the outcome of one probe.
type Check struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerStateReader exposes the state of the database circuit breaker.
type BreakerStateReader interface {
	State() gobreaker.State
}

type probe func(context.Context) Check

// HealthHandler reports database reachability, pool pressure and, when set,
// the breaker state. Any unhealthy check turns the response into a 503;
// degraded checks still answer 200.
type HealthHandler struct {
	DB      *sql.DB
	Version string
	Breaker BreakerStateReader // nil when the breaker is disabled
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthBudget)
	defer cancel()

	probes := map[string]probe{"database": h.database}
	if h.Breaker != nil {
		probes["circuit_breaker"] = h.breaker
	}

	report := HealthReport{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
		Checks:    make(map[string]Check, len(probes)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for name, p := range probes {
		g.Go(func() error {
			c := p(gctx)
			mu.Lock()
			report.Checks[name] = c
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	code := http.StatusOK
	for _, c := range report.Checks {
		if c.Status == StatusUnhealthy {
			report.Status = StatusUnhealthy
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, report)
}

func (h *HealthHandler) database(ctx context.Context) Check {
	if h.DB == nil {
		return Check{Status: StatusUnhealthy, Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		logging.FromContext(ctx).Warn("health: database ping failed",
			slog.String("error", respond.SanitizeError(err)))
		return Check{Status: StatusUnhealthy, Message: "ping failed"}
	}

	st := h.DB.Stats()
	metrics.UpdateDBConnectionStats(st.InUse, st.Idle)

	c := Check{
		Status: StatusHealthy,
		Details: map[string]any{
			"max_open_connections": st.MaxOpenConnections,
			"open_connections":     st.OpenConnections,
			"in_use":               st.InUse,
			"idle":                 st.Idle,
			"wait_count":           st.WaitCount,
			"wait_duration_ms":     st.WaitDuration.Milliseconds(),
		},
	}
	if st.MaxOpenConnections <= 0 {
		c.Status, c.Message = StatusDegraded, "connection pool max connections not configured"
		return c
	}

	ratio := float64(st.InUse) / float64(st.MaxOpenConnections)
	c.Details["utilization_percent"] = ratio * 100
	if ratio >= poolBusyRatio {
		c.Status, c.Message = StatusDegraded, "connection pool utilization above 80%"
	}
	return c
}

func (h *HealthHandler) breaker(context.Context) Check {
	s := h.Breaker.State()
	c := Check{Status: StatusHealthy, Details: map[string]any{"state": s.String()}}
	switch s {
	case gobreaker.StateOpen:
		c.Status, c.Message = StatusUnhealthy, "database circuit open"
	case gobreaker.StateHalfOpen:
		c.Status, c.Message = StatusDegraded, "database circuit half-open"
	}
	return c
}

// ReadyHandler answers the readiness probe: 200 "ready" once the database
// answers a ping, 503 otherwise.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyBudget)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		logging.FromContext(ctx).Warn("readiness: database not ready",
			slog.String("error", respond.SanitizeError(err)))
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	plainOK(w, "ready")
}

// LiveHandler answers the liveness probe; it never touches dependencies.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	plainOK(w, "alive")
}

func plainOK(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
