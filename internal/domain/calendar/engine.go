package calendar

import (
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
)

// Engine is the deadline-computation service.  It is stateless apart from
// the injected memoization cache; all methods are safe for concurrent use.
type Engine struct {
	store HolidayStore
	cache ResultCache
	log   logging.Logger

	// Window tunables, in days.  Performance parameters only: any values
	// yield the same computed dates, just with different fetch patterns.
	initialMargin   int
	growthIncrement int
	lookahead       int

	// maxGrowths caps window expansions per computation.
	maxGrowths int

	onCacheHit  func()
	onCacheMiss func()
}

const (
	defaultInitialMarginDays   = 120
	defaultGrowthIncrementDays = 120
	defaultLookaheadDays       = 60
	defaultMaxWindowGrowths    = 128
)

// Option customises an Engine at construction.
type Option func(*Engine)

// WithWindow overrides the holiday-window tunables (all in days).
// Non-positive values keep the corresponding default.
func WithWindow(initialMargin, growthIncrement, lookahead int) Option {
	return func(e *Engine) {
		if initialMargin > 0 {
			e.initialMargin = initialMargin
		}
		if growthIncrement > 0 {
			e.growthIncrement = growthIncrement
		}
		if lookahead > 0 {
			e.lookahead = lookahead
		}
	}
}

// WithMaxWindowGrowths overrides the defensive expansion cap.
func WithMaxWindowGrowths(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxGrowths = n
		}
	}
}

// WithCacheEvents installs hooks fired on memoization hits and misses, used
// to surface cache effectiveness as metrics without coupling the domain to
// a metrics library.
func WithCacheEvents(onHit, onMiss func()) Option {
	return func(e *Engine) {
		e.onCacheHit = onHit
		e.onCacheMiss = onMiss
	}
}

// NewEngine builds an Engine over the given holiday store and cache.
func NewEngine(store HolidayStore, cache ResultCache, log logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:           store,
		cache:           cache,
		log:             log.Named("calendar"),
		initialMargin:   defaultInitialMarginDays,
		growthIncrement: defaultGrowthIncrementDays,
		lookahead:       defaultLookaheadDays,
		maxGrowths:      defaultMaxWindowGrowths,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClearCache discards every memoized applicable-holiday set.  Call after
// editing holiday data; the next computation re-reads the store.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.log.Info("applicable-holiday cache cleared")
}
