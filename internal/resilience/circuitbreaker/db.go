package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"blog-api/internal/observability/metrics"
)

// DBName is the breaker name used for logs and the circuit_breaker_state gauge.
const DBName = "database"

// DBConfig trips only when every call in a window of at least five fails,
// i.e. the database is unreachable, not when single statements error.
func DBConfig() Config {
	return Config{
		Name:             DBName,
		HalfOpenRequests: 3,
		Window:           time.Minute,
		OpenFor:          30 * time.Second,
		TripRatio:        1.0,
		MinSamples:       5,
		Benign:           benignDBError,
		OnTransition: func(name string, _, to gobreaker.State) {
			metrics.RecordCircuitBreakerState(name, int(to))
		},
	}
}

func benignDBError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, sql.ErrTxDone) ||
		errors.Is(err, context.Canceled)
}

// DBCircuitBreaker satisfies db.Querier and hands every call to the
// wrapped *sql.DB through a Breaker.
type DBCircuitBreaker struct {
	*Breaker
	db *sql.DB
}

// NewDBCircuitBreaker wraps db with DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{Breaker: NewBreaker(cfg), db: db}
}

func (d *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return Call(d.Breaker, func() (*sql.Rows, error) {
		return d.db.QueryContext(ctx, query, args...)
	})
}

func (d *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return Call(d.Breaker, func() (sql.Result, error) {
		return d.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext bypasses the breaker: *sql.Row only surfaces its error at
// Scan, after the breaker would already have counted the call.
func (d *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx guards opening the transaction. Statements on the returned *sql.Tx
// are not guarded.
func (d *DBCircuitBreaker) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return Call(d.Breaker, func() (*sql.Tx, error) {
		return d.db.BeginTx(ctx, opts)
	})
}

func (d *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := Call(d.Breaker, func() (struct{}, error) {
		return struct{}{}, d.db.PingContext(ctx)
	})
	return err
}

// DB returns the unguarded handle, used for pool stats and shutdown.
func (d *DBCircuitBreaker) DB() *sql.DB { return d.db }
