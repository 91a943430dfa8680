// Package registry – fixed-window rate-limit ledger.
//
// The ledger is a deliberate approximation: windows do not slide, bursts
// are not smoothed, and the request that breaches the budget is counted
// before it is denied. The method name is part of the composite key, so the
// same path under different methods carries independent budgets.
package registry

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-mock-server/internal/domain"
)

// window is one rate-limit cell: the instant the current window opened and
// the number of requests counted inside it. Cells are only touched under
// the ledger mutex.
type window struct {
	start time.Time
	count int
}

// RateLedger tracks fixed-window request counts per (path, method) pair.
// A single mutex protects the whole map; hold time per check is bounded by
// a constant. Stale cells are overwritten in place when the next request
// observes the window expired.
type RateLedger struct {
	mu      sync.Mutex
	windows map[string]*window

	// now is swappable for tests.
	now func() time.Time
}

// NewRateLedger returns an empty ledger using the wall clock.
func NewRateLedger() *RateLedger {
	return &RateLedger{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Check records one request for (path, method) against limit and reports
// whether it is admitted. A nil limit admits unconditionally and leaves the
// ledger untouched.
//
// Semantics per cell:
//   - first request: store (now, 1) and admit
//   - window expired: reset to (now, 1) and admit
//   - otherwise: increment; deny once the count exceeds the budget
func (l *RateLedger) Check(path, method string, limit *domain.RateLimit) error {
	if limit == nil {
		return nil
	}

	key := path + "|" + method

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok {
		l.windows[key] = &window{start: now, count: 1}
		return nil
	}

	if now.Sub(w.start) > time.Duration(limit.WindowMS)*time.Millisecond {
		w.start = now
		w.count = 1
		log.Info().Str("key", key).Msg("rate window expired, resetting counter")
		return nil
	}

	w.count++
	if w.count > limit.Requests {
		log.Warn().
			Str("path", path).
			Str("method", method).
			Int("count", w.count).
			Int("limit", limit.Requests).
			Msg("rate limit exceeded")
		return domain.ErrRateLimited
	}
	return nil
}
