// Package retry re-runs database operations that failed for transient,
// connection-level reasons, backing off exponentially between attempts.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"syscall"
	"time"
)

// Policy describes how often and how patiently to retry.
type Policy struct {
	// Attempts counts the first call. Values below 1 mean a single call.
	Attempts int

	// Base is the wait after the first failure; each later wait is Factor
	// times the previous one, capped at Cap.
	Base   time.Duration
	Cap    time.Duration
	Factor float64

	// Jitter adds up to this fraction of the wait, at random (0..1).
	Jitter float64

	// Retryable classifies errors. Nil means Transient.
	Retryable func(error) bool
}

// Transactional suits single statements from the worker jobs: a few quick
// attempts that give up within about a second.
func Transactional() Policy {
	return Policy{
		Attempts: 3,
		Base:     100 * time.Millisecond,
		Cap:      time.Second,
		Factor:   2,
		Jitter:   0.1,
	}
}

// Connect suits the startup ping. A database container often comes up after
// the application, so anything but cancellation is retried for ~20s.
func Connect() Policy {
	return Policy{
		Attempts: 6,
		Base:     500 * time.Millisecond,
		Cap:      5 * time.Second,
		Factor:   2,
		Jitter:   0.1,
		Retryable: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	}
}

// Delay is the wait before attempt n+1 after attempt n failed, without jitter.
func (p Policy) Delay(n int) time.Duration {
	d := float64(p.Base)
	for i := 1; i < n; i++ {
		d *= p.Factor
		if p.Cap > 0 && d >= float64(p.Cap) {
			return p.Cap
		}
	}
	if p.Cap > 0 && d > float64(p.Cap) {
		return p.Cap
	}
	return time.Duration(d)
}

func (p Policy) jittered(d time.Duration) time.Duration {
	j := min(p.Jitter, 1)
	if j <= 0 || d <= 0 {
		return d
	}
	// #nosec G404 -- jitter needs no cryptographic randomness
	return d + time.Duration(rand.Float64()*j*float64(d))
}

// permanentError stops Do regardless of Policy.Retryable.
type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// ErrExhausted wraps the last error once every attempt has failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Do calls fn until it succeeds, returns a non-retryable error, the policy
// runs out of attempts or ctx is done.
func Do(ctx context.Context, p Policy, fn func() error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = Transient
	}
	attempts := max(p.Attempts, 1)

	for n := 1; ; n++ {
		err := fn()
		if err == nil {
			if n > 1 {
				slog.Info("operation succeeded after retry", slog.Int("attempt", n))
			}
			return nil
		}

		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if !retryable(err) {
			return err
		}
		if n >= attempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, n, err)
		}

		wait := p.jittered(p.Delay(n))
		slog.Warn("operation failed, retrying",
			slog.Int("attempt", n),
			slog.Int("max_attempts", attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
}

// Transient reports connection-level failures: a bad pooled connection,
// network timeouts, refused or reset connections. SQL and constraint errors
// are not transient.
func Transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
