package slo

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the API.
const (
	// AvailabilitySLO defines the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// ErrorRateSLO defines the maximum acceptable error rate as a ratio (0.1% = 0.001)
	ErrorRateSLO = 0.001
)

// SLO tracking metrics.
// These gauges are updated once per window by Tracker.Flush.
var (
	// SLOAvailability tracks the availability ratio (0-1) of the last window
	// calculated as: (total_requests - 5xx_errors) / total_requests
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Current availability ratio (0-1), target: 0.999",
		},
	)

	// SLOErrorRate tracks the error rate ratio (0-1) of the last window
	// calculated as: 5xx_errors / total_requests
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Current error rate ratio (0-1), target: 0.001",
		},
	)
)

// Tracker accumulates request outcomes for the current window.
type Tracker struct {
	mu     sync.Mutex
	total  int64
	errors int64
}

// Default is the tracker fed by the HTTP metrics middleware.
var Default = &Tracker{}

// Observe records one finished request by status code.
func (t *Tracker) Observe(status int) {
	t.mu.Lock()
	t.total++
	if status >= 500 {
		t.errors++
	}
	t.mu.Unlock()
}

// Flush publishes the ratios of the current window and starts a new one.
// An empty window reports full availability.
func (t *Tracker) Flush() (availability, errorRate float64) {
	t.mu.Lock()
	total, errs := t.total, t.errors
	t.total, t.errors = 0, 0
	t.mu.Unlock()

	availability, errorRate = 1, 0
	if total > 0 {
		errorRate = float64(errs) / float64(total)
		availability = 1 - errorRate
	}
	UpdateAvailability(availability)
	UpdateErrorRate(errorRate)
	return availability, errorRate
}

// UpdateAvailability updates the availability SLO metric.
func UpdateAvailability(ratio float64) {
	SLOAvailability.Set(ratio)
}

// UpdateErrorRate updates the error rate SLO metric.
func UpdateErrorRate(ratio float64) {
	SLOErrorRate.Set(ratio)
}
