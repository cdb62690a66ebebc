package calendar

import "time"

// Recess window boundaries, CPC art. 220: procedural deadlines are suspended
// from December 20 through January 20 of the following year, inclusive.
const (
	recessStartMonth = time.December
	recessStartDay   = 20
	recessEndMonth   = time.January
	recessEndDay     = 20
)

// RecessDays generates the statutory year-end recess days intersected with
// [start, end], both inclusive.  It is a pure function of the interval: the
// recess exists by force of law whether or not any matching row is stored,
// so it must never depend on holiday data.  Every calendar year the interval
// touches contributes its recess, with one year of margin on each side to
// catch windows that straddle a year boundary.
func RecessDays(start, end time.Time) DateSet {
	start, end = DateOf(start), DateOf(end)
	out := make(DateSet)
	if end.Before(start) {
		return out
	}

	for y := start.Year() - 1; y <= end.Year()+1; y++ {
		recessStart := time.Date(y, recessStartMonth, recessStartDay, 0, 0, 0, 0, time.UTC)
		recessEnd := time.Date(y+1, recessEndMonth, recessEndDay, 0, 0, 0, 0, time.UTC)

		a, b := recessStart, recessEnd
		if a.Before(start) {
			a = start
		}
		if b.After(end) {
			b = end
		}

		for d := a; !d.After(b); d = d.AddDate(0, 0, 1) {
			out.Add(d)
		}
	}

	return out
}
