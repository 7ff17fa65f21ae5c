package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"blog-api/internal/observability/metrics"
)

// instrumented times every round trip on the wrapped Querier into
// db_query_duration_seconds, labelled by statement kind.
type instrumented struct {
	next Querier
}

// Instrument wraps q so each statement is recorded in metrics.DBQueryDuration.
func Instrument(q Querier) Querier {
	return &instrumented{next: q}
}

func (i *instrumented) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer observe(query, time.Now())
	return i.next.QueryContext(ctx, query, args...)
}

func (i *instrumented) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer observe(query, time.Now())
	return i.next.QueryRowContext(ctx, query, args...)
}

func (i *instrumented) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer observe(query, time.Now())
	return i.next.ExecContext(ctx, query, args...)
}

func (i *instrumented) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	defer observeOp("begin", time.Now())
	return i.next.BeginTx(ctx, opts)
}

func observe(query string, start time.Time) {
	observeOp(StatementKind(query), start)
}

func observeOp(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}

// StatementKind returns the lower-cased leading keyword of query
// ("select", "insert", ...) or "other" when it is not a DML verb.
func StatementKind(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "other"
	}
	switch kw := strings.ToLower(fields[0]); kw {
	case "select", "insert", "update", "delete", "with":
		return kw
	default:
		return "other"
	}
}
