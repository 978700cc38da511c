// Package ratelimit counts requests per client key and decides whether a
// request fits in its budget.
//
// Limiter implements a fixed window counter over a pluggable Store, so the
// same policy can run against process memory or a shared Redis instance.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable is returned when the backing store cannot be reached.
var ErrStoreUnavailable = errors.New("ratelimit: store unavailable")

// Store atomically increments the counter for key within a window of the
// given length, starting a new window when the previous one has elapsed.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// Result describes a single limiter decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait, never less than a second.
func (r Result) RetryAfter(now time.Time) time.Duration {
	d := r.ResetAt.Sub(now).Round(time.Second)
	if d < time.Second {
		return time.Second
	}
	return d
}

// Config holds the policy of a fixed window limiter.
type Config struct {
	Limit     int           // accepted requests per window
	Window    time.Duration // window length
	KeyPrefix string        // namespaces keys in shared stores
}

// Limiter enforces "no more than Limit accepted requests per key per Window".
// Rejected requests still count, so hammering a closed window does not reopen it early.
type Limiter struct {
	cfg   Config
	store Store
}

func NewLimiter(cfg Config, store Store) *Limiter {
	if cfg.Limit <= 0 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &Limiter{cfg: cfg, store: store}
}

// Allow records one request for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := l.store.Increment(ctx, l.cfg.KeyPrefix+key, l.cfg.Window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.cfg.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   count <= l.cfg.Limit,
		Limit:     l.cfg.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// Config returns the limiter policy.
func (l *Limiter) Config() Config {
	return l.cfg
}
