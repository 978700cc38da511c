package ratelimit

import (
	"context"
	"sync"
	"time"
)

// entry tracks the request count of one key
type entry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
	deleted bool // removed by Cleanup; callers holding it must reload
}

// MemoryStore keeps window counters in process memory.
// Entries are independent, so requests for different keys never contend.
type MemoryStore struct {
	entries sync.Map // key -> *entry
	now     func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Increment implements Store.
func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := s.now()

	for {
		v, _ := s.entries.LoadOrStore(key, &entry{resetAt: now.Add(window)})
		e := v.(*entry)

		e.mu.Lock()
		if e.deleted {
			e.mu.Unlock()
			s.entries.CompareAndDelete(key, e)
			continue
		}

		// Reset if window expired
		if !now.Before(e.resetAt) {
			e.count = 0
			e.resetAt = now.Add(window)
		}

		e.count++
		count, resetAt := e.count, e.resetAt
		e.mu.Unlock()
		return count, resetAt, nil
	}
}

// Cleanup drops entries whose window has elapsed and returns how many were removed.
func (s *MemoryStore) Cleanup() int {
	now := s.now()
	removed := 0
	s.entries.Range(func(key, value any) bool {
		e := value.(*entry)
		e.mu.Lock()
		if !now.Before(e.resetAt) {
			e.deleted = true
			s.entries.CompareAndDelete(key, e)
			removed++
		}
		e.mu.Unlock()
		return true
	})
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (s *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
