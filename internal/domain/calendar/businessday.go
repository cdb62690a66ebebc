package calendar

import (
	"context"
	"time"

	"github.com/juristech/prazojus/pkg/errors"
)

// IsBusinessDay reports whether d is a working day: not a Saturday, not a
// Sunday, and not a member of holidays.
func IsBusinessDay(d time.Time, holidays DateSet) bool {
	d = DateOf(d)
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(d)
}

// holidayWindow is the bounded, growable holiday view a single computation
// walks over.  The initial set may be shared with the cache; the first
// growth clones it before mutating.
type holidayWindow struct {
	engine  *Engine
	query   Query
	set     DateSet
	end     time.Time
	growths int
	private bool
}

// openWindow fetches applicable holidays for [start, start+spanHint+margin].
// spanHint is the naive calendar-day estimate of how far the walk reaches;
// the margin absorbs weekends, holidays and the recess.
func (e *Engine) openWindow(ctx context.Context, start time.Time, spanHint int, q Query) (*holidayWindow, error) {
	start = DateOf(start)
	if spanHint < 0 {
		spanHint = 0
	}
	end := start.AddDate(0, 0, spanHint+e.initialMargin)

	set, err := e.ApplicableHolidays(ctx, start, end, q)
	if err != nil {
		return nil, err
	}
	return &holidayWindow{engine: e, query: q, set: set, end: end}, nil
}

// ensure grows the window until d plus the lookahead fits inside it, so a
// walk never reads past the fetched horizon.  Each growth fetches one more
// increment; the cap turns a runaway walk (every remaining day non-business)
// into an error instead of an unbounded fetch loop.
func (w *holidayWindow) ensure(ctx context.Context, d time.Time) error {
	e := w.engine
	for DateOf(d).AddDate(0, 0, e.lookahead).After(w.end) {
		if w.growths >= e.maxGrowths {
			return errors.New(errors.ErrCodeCalendarExhausted,
				"business-day walk exceeded the calendar window growth limit")
		}
		w.growths++

		next := w.end.AddDate(0, 0, e.growthIncrement)
		more, err := e.ApplicableHolidays(ctx, w.end.AddDate(0, 0, 1), next, w.query)
		if err != nil {
			return err
		}
		if !w.private {
			w.set = w.set.clone()
			w.private = true
		}
		w.set.union(more)
		w.end = next
	}
	return nil
}

// NextBusinessDay returns the first business day on or after from, under the
// query's jurisdiction and rule set.
func (e *Engine) NextBusinessDay(ctx context.Context, from time.Time, q Query) (time.Time, error) {
	if from.IsZero() {
		return time.Time{}, errors.InvalidArgument("from date is required")
	}
	cursor := DateOf(from)

	w, err := e.openWindow(ctx, cursor, e.lookahead, q)
	if err != nil {
		return time.Time{}, err
	}
	for {
		if err := w.ensure(ctx, cursor); err != nil {
			return time.Time{}, err
		}
		if IsBusinessDay(cursor, w.set) {
			return cursor, nil
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
}

// AddBusinessDays walks forward from start counting business days until n
// are consumed and returns the date of the n-th one.  With excludeStart the
// count begins on the day after start, which is how procedural deadlines run
// (the triggering day itself is not counted).  For n == 0 the result is
// start (or the day after, when excluded) snapped forward to a business day.
//
// The result is invariant under the window tunables: growing the window
// changes how holidays are fetched, never which days count.
func (e *Engine) AddBusinessDays(ctx context.Context, start time.Time, n int, excludeStart bool, q Query) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, errors.InvalidArgument("start date is required")
	}
	if n < 0 {
		return time.Time{}, errors.InvalidArgument("business-day count must not be negative")
	}

	cursor := DateOf(start)
	if excludeStart {
		cursor = cursor.AddDate(0, 0, 1)
	}

	// 3x the count approximates the calendar span of n business days with
	// weekends; the window margin covers the rest.
	w, err := e.openWindow(ctx, cursor, n*3, q)
	if err != nil {
		return time.Time{}, err
	}

	counted := 0
	for counted < n {
		if err := w.ensure(ctx, cursor); err != nil {
			return time.Time{}, err
		}
		if IsBusinessDay(cursor, w.set) {
			counted++
			if counted == n {
				break
			}
		}
		cursor = cursor.AddDate(0, 0, 1)
	}

	// Snap forward onto a business day.  Reached only for n == 0; kept as a
	// loop so the result is always a business day no matter how the count
	// above terminated.
	for {
		if err := w.ensure(ctx, cursor); err != nil {
			return time.Time{}, err
		}
		if IsBusinessDay(cursor, w.set) {
			return cursor, nil
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
}
