package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in milliseconds
// Returns: [current_count, ttl_remaining_ms]
var incrementScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

// RedisStore keeps window counters in Redis so several instances share a budget.
type RedisStore struct {
	client goredis.Scripter
}

func NewRedisStore(client goredis.Scripter) *RedisStore {
	return &RedisStore{client: client}
}

// Increment implements Store.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	result, err := incrementScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("ratelimit: unexpected redis result %v", result)
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	if ttl < 0 {
		ttl = window.Milliseconds()
	}

	return int(count), time.Now().Add(time.Duration(ttl) * time.Millisecond), nil
}

// ErrorReportInterval bounds how often FallbackStore reports primary failures.
// An outage would otherwise produce one report per request.
const ErrorReportInterval = time.Minute

// FallbackStore tries primary first and uses secondary when primary fails.
// With failClosed set the primary error is returned instead.
type FallbackStore struct {
	primary    Store
	secondary  Store
	failClosed bool
	onError    func(error)
	report     *rate.Sometimes
}

func NewFallbackStore(primary, secondary Store, failClosed bool, onError func(error)) *FallbackStore {
	return &FallbackStore{
		primary:    primary,
		secondary:  secondary,
		failClosed: failClosed,
		onError:    onError,
		report:     &rate.Sometimes{Interval: ErrorReportInterval},
	}
}

// Increment implements Store.
func (s *FallbackStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	count, resetAt, err := s.primary.Increment(ctx, key, window)
	if err == nil {
		return count, resetAt, nil
	}
	if s.onError != nil {
		s.report.Do(func() { s.onError(err) })
	}
	if s.failClosed {
		return 0, time.Time{}, err
	}
	return s.secondary.Increment(ctx, key, window)
}
