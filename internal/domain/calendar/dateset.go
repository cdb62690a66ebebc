package calendar

import "time"

// DateOf truncates t to day granularity in UTC.  Every date the engine
// stores, compares, or caches goes through this first.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateSet is a set of day-granular dates.  Sets returned by the engine's
// aggregation path are shared via the cache and must be treated as
// immutable; internal code clones before mutating.
type DateSet map[time.Time]struct{}

// Add inserts d (truncated to day granularity).
func (s DateSet) Add(d time.Time) {
	s[DateOf(d)] = struct{}{}
}

// Contains reports whether d's calendar day is in the set.
func (s DateSet) Contains(d time.Time) bool {
	_, ok := s[DateOf(d)]
	return ok
}

// clone returns an independent copy safe to mutate.
func (s DateSet) clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// union adds every member of other into s (s must be a private copy).
func (s DateSet) union(other DateSet) {
	for d := range other {
		s[d] = struct{}{}
	}
}
