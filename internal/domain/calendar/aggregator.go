package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/pkg/errors"
)

// cacheKey builds the memoization key from the fully-normalized call tuple.
func cacheKey(start, end time.Time, lc localityContext, rules RuleSet) string {
	return fmt.Sprintf("%s|%s|%s|%s|%02x",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		lc.comarca, lc.municipality, rules.bits())
}

// ApplicableHolidays returns the set of non-business dates inside
// [start, end] (inclusive, day granularity) for the given jurisdiction and
// rule set: store rows whose scope and locality apply, plus the automatic
// year-end recess whenever the court-general flag is on.
//
// The returned set may be shared with the cache and other callers; treat it
// as read-only.
func (e *Engine) ApplicableHolidays(ctx context.Context, start, end time.Time, q Query) (DateSet, error) {
	start, end = DateOf(start), DateOf(end)
	lc := resolveContext(q.Comarca, q.Municipality, q.ApplyLocal)

	key := cacheKey(start, end, lc, q.Rules)
	if cached, ok := e.cache.Get(key); ok {
		if e.onCacheHit != nil {
			e.onCacheHit()
		}
		return cached, nil
	}
	if e.onCacheMiss != nil {
		e.onCacheMiss()
	}

	rows, err := e.store.FetchRange(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "holiday store fetch failed")
	}

	out := make(DateSet)
	for i := range rows {
		if e.holidayApplies(&rows[i], lc, q.Rules) {
			out.Add(rows[i].Date)
		}
	}

	if q.Rules.CourtGeneral {
		out.union(RecessDays(start, end))
	}

	e.cache.Put(key, out)
	return out, nil
}

// holidayApplies decides whether a single stored row counts under the
// context and rule set.  Unknown scopes never apply.  A MUNICIPAL row is
// matched against the municipality and the comarca, because real-world data
// records either concept in the locality column; narrowing this would drop
// applicable holidays.
func (e *Engine) holidayApplies(h *Holiday, lc localityContext, rules RuleSet) bool {
	scope := h.ResolvedScope()
	if !rules.allows(scope) {
		return false
	}
	if scope.IsFixed() {
		return true
	}

	loc := NormalizeLocality(h.Locality)
	if lc.comarca == "" && lc.municipality == "" {
		// Local scope requested but no usable jurisdiction supplied; treated
		// as no match, never as a failure.
		e.log.Debug("local-scope holiday skipped without locality context",
			logging.String("scope", string(scope)),
			logging.Time("date", h.Date))
		return false
	}

	switch scope {
	case ScopeMunicipal:
		return localityMatches(loc, lc.municipality) || localityMatches(loc, lc.comarca)
	case ScopeCourtLocal:
		return localityMatches(loc, lc.comarca)
	}
	return false
}
