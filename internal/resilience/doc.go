// Package resilience holds the failure-handling helpers around the database.
//
// circuitbreaker wraps the shared *sql.DB so a dead database fails fast with
// gobreaker.ErrOpenState instead of tying up request goroutines, and retry
// runs an operation again with capped, jittered exponential backoff:
//
//	dcb := circuitbreaker.NewDBCircuitBreaker(sqlDB)
//	repos, err := persistence.New(dialect, dcb)
//
//	err := retry.Do(ctx, retry.Connect(), func() error {
//	    return sqlDB.PingContext(ctx)
//	})
package resilience
