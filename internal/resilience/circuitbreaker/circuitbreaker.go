// Package circuitbreaker keeps the API from piling requests onto a database
// that is down. It is a thin layer over github.com/sony/gobreaker.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config describes when a breaker trips and how it recovers.
type Config struct {
	Name string

	// HalfOpenRequests is how many probe calls are let through while half-open.
	HalfOpenRequests uint32

	// Window clears the closed-state counters periodically. Zero never clears.
	Window time.Duration

	// OpenFor is how long the breaker stays open before probing again.
	OpenFor time.Duration

	// TripRatio is the failure ratio (0..1] that opens the breaker once
	// MinSamples calls have been observed in the current window.
	TripRatio  float64
	MinSamples uint32

	// Benign reports errors that are answers rather than outages
	// (no rows, caller cancelled). They count as successes.
	Benign func(err error) bool

	// OnTransition runs after each state change, after the change is logged.
	OnTransition func(name string, from, to gobreaker.State)
}

// Breaker wraps a gobreaker.CircuitBreaker built from a Config.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// NewBreaker builds a breaker. It starts closed.
func NewBreaker(cfg Config) *Breaker {
	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Window,
		Timeout:     cfg.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests == 0 || c.Requests < cfg.MinSamples {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.TripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			if cfg.OnTransition != nil {
				cfg.OnTransition(name, from, to)
			}
		},
	}
	if cfg.Benign != nil {
		benign := cfg.Benign
		st.IsSuccessful = func(err error) bool { return err == nil || benign(err) }
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(st), name: cfg.Name}
}

// Call runs fn through b. While b is open fn is not invoked and
// gobreaker.ErrOpenState is returned; in half-open state calls beyond the
// probe budget get gobreaker.ErrTooManyRequests.
func Call[T any](b *Breaker, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Counts is a snapshot of the counters for the current generation.
func (b *Breaker) Counts() gobreaker.Counts { return b.cb.Counts() }

// Rejecting is true while the breaker refuses calls outright.
func (b *Breaker) Rejecting() bool { return b.cb.State() == gobreaker.StateOpen }
