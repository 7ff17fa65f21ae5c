package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultInvalid   = "invalid"
	ResultAnonymous = "anonymous"
	ResultError     = "error"
)

var (
	// authRequestsTotal counts sign up, sign in, sign out and token
	// resolution attempts by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by action and result",
		},
		[]string{"action", "result"},
	)

	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "auth_duration_seconds",
			Help: "Authentication duration by action",
			// bcrypt dominates sign up and sign in
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"action"},
	)

	// unauthenticatedTotal counts requests rejected by RequireUser.
	unauthenticatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_unauthenticated_total",
			Help: "Requests rejected for missing or invalid credentials by method",
		},
		[]string{"method"},
	)
)

// RecordAuthRequest records an authentication attempt.
func RecordAuthRequest(action, result string) {
	authRequestsTotal.WithLabelValues(action, result).Inc()
}

// RecordAuthDuration records how long an authentication action took.
func RecordAuthDuration(action string, durationSeconds float64) {
	authDuration.WithLabelValues(action).Observe(durationSeconds)
}

// RecordUnauthenticated records a request rejected with 401.
func RecordUnauthenticated(method string) {
	unauthenticatedTotal.WithLabelValues(method).Inc()
}
