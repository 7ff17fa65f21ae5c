package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── ヘルパ ───────── */

func pingDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func getHealth(t *testing.T, h http.Handler) (int, HealthReport) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var rep HealthReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rep))
	return rec.Code, rep
}

type fixedBreaker gobreaker.State

func (b fixedBreaker) State() gobreaker.State { return gobreaker.State(b) }

/* ───────── /health ───────── */

func TestHealthHandler_Ping(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    int
		status  string
	}{
		{name: "reachable", want: http.StatusOK, status: StatusHealthy},
		{name: "connection closed", pingErr: sql.ErrConnDone, want: http.StatusServiceUnavailable, status: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := pingDB(t)
			db.SetMaxOpenConns(10)
			mock.ExpectPing().WillReturnError(tt.pingErr)

			code, rep := getHealth(t, &HealthHandler{DB: db, Version: "1.4.0"})

			assert.Equal(t, tt.want, code)
			assert.Equal(t, tt.status, rep.Status)
			assert.Equal(t, "1.4.0", rep.Version)
			_, err := time.Parse(time.RFC3339, rep.Timestamp)
			assert.NoError(t, err)
			assert.Contains(t, rep.Checks, "database")
			assert.NotContains(t, rep.Checks, "circuit_breaker")
		})
	}
}

func TestHealthHandler_NoDatabase(t *testing.T) {
	code, rep := getHealth(t, &HealthHandler{})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusUnhealthy, rep.Status)
	assert.Equal(t, "not configured", rep.Checks["database"].Message)
}

func TestHealthHandler_PoolDetails(t *testing.T) {
	tests := []struct {
		name        string
		maxOpen     int
		wantStatus  string
		wantMessage string
		wantRatio   bool
	}{
		{name: "bounded pool", maxOpen: 10, wantStatus: StatusHealthy, wantRatio: true},
		{name: "single connection", maxOpen: 1, wantStatus: StatusHealthy, wantRatio: true},
		{name: "unbounded pool", maxOpen: 0, wantStatus: StatusDegraded, wantMessage: "connection pool max connections not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := pingDB(t)
			db.SetMaxOpenConns(tt.maxOpen)
			mock.ExpectPing()

			code, rep := getHealth(t, &HealthHandler{DB: db})

			// degraded is still serving
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, StatusHealthy, rep.Status)

			c := rep.Checks["database"]
			assert.Equal(t, tt.wantStatus, c.Status)
			assert.Equal(t, tt.wantMessage, c.Message)
			assert.Equal(t, float64(tt.maxOpen), c.Details["max_open_connections"])
			ratio, ok := c.Details["utilization_percent"]
			assert.Equal(t, tt.wantRatio, ok)
			if ok {
				// sqlmock never leaves a connection checked out
				assert.Equal(t, float64(0), ratio)
			}
		})
	}
}

func TestHealthHandler_CircuitBreaker(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		code  int
		check string
	}{
		{state: gobreaker.StateClosed, code: http.StatusOK, check: StatusHealthy},
		{state: gobreaker.StateHalfOpen, code: http.StatusOK, check: StatusDegraded},
		{state: gobreaker.StateOpen, code: http.StatusServiceUnavailable, check: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			db, mock := pingDB(t)
			db.SetMaxOpenConns(10)
			mock.ExpectPing()

			code, rep := getHealth(t, &HealthHandler{DB: db, Breaker: fixedBreaker(tt.state)})

			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.check, rep.Checks["circuit_breaker"].Status)
			assert.Equal(t, tt.state.String(), rep.Checks["circuit_breaker"].Details["state"])
		})
	}
}

func TestHealthHandler_Headers(t *testing.T) {
	db, mock := pingDB(t)
	mock.ExpectPing()

	rec := httptest.NewRecorder()
	(&HealthHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHealthHandler_PingErrorNotLeaked(t *testing.T) {
	db, mock := pingDB(t)
	mock.ExpectPing().WillReturnError(errors.New("dial tcp: postgres://blog:hunter2@db:5432"))

	rec := httptest.NewRecorder()
	(&HealthHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Body.String(), "ping failed")
}

/* ───────── /ready と /live ───────── */

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name  string
		setup func(sqlmock.Sqlmock)
		code  int
		body  string
	}{
		{name: "ready", setup: func(m sqlmock.Sqlmock) { m.ExpectPing() }, code: http.StatusOK, body: "ready"},
		{name: "ping error", setup: func(m sqlmock.Sqlmock) { m.ExpectPing().WillReturnError(sql.ErrConnDone) }, code: http.StatusServiceUnavailable, body: "database not ready\n"},
		{name: "ping slower than budget", setup: func(m sqlmock.Sqlmock) { m.ExpectPing().WillDelayFor(3 * time.Second) }, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := pingDB(t)
			tt.setup(mock)

			rec := httptest.NewRecorder()
			(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestReadyHandler_NoDatabase(t *testing.T) {
	rec := httptest.NewRecorder()
	(&ReadyHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database not configured")
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LiveHandler{}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
