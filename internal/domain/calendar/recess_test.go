package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecessDaysBoundaries(t *testing.T) {
	set := RecessDays(date(2025, 12, 1), date(2026, 2, 1))

	assert.False(t, set.Contains(date(2025, 12, 19)), "day before the recess")
	assert.True(t, set.Contains(date(2025, 12, 20)), "first recess day")
	assert.True(t, set.Contains(date(2025, 12, 31)))
	assert.True(t, set.Contains(date(2026, 1, 1)))
	assert.True(t, set.Contains(date(2026, 1, 20)), "last recess day")
	assert.False(t, set.Contains(date(2026, 1, 21)), "day after the recess")
}

func TestRecessDaysClampedToInterval(t *testing.T) {
	set := RecessDays(date(2026, 1, 5), date(2026, 1, 10))
	assert.Len(t, set, 6)
	assert.True(t, set.Contains(date(2026, 1, 5)))
	assert.True(t, set.Contains(date(2026, 1, 10)))
	assert.False(t, set.Contains(date(2026, 1, 11)))
}

func TestRecessDaysOutsideWindow(t *testing.T) {
	set := RecessDays(date(2026, 3, 1), date(2026, 6, 1))
	assert.Empty(t, set)
}

func TestRecessDaysStraddlingYears(t *testing.T) {
	// A multi-year interval picks up every recess it crosses.
	set := RecessDays(date(2024, 12, 1), date(2026, 2, 1))
	assert.True(t, set.Contains(date(2024, 12, 25)))
	assert.True(t, set.Contains(date(2025, 1, 10)))
	assert.True(t, set.Contains(date(2025, 12, 25)))
	assert.True(t, set.Contains(date(2026, 1, 10)))
	assert.False(t, set.Contains(date(2025, 6, 1)))
}

func TestRecessDaysCoverEveryMiddleYear(t *testing.T) {
	// Long spans must include the recess of every year in between, not just
	// the endpoint years.
	set := RecessDays(date(2022, 3, 1), date(2027, 3, 1))
	for y := 2022; y <= 2026; y++ {
		assert.True(t, set.Contains(date(y, 12, 20)), "recess start of %d", y)
		assert.True(t, set.Contains(date(y+1, 1, 20)), "recess end spilling into %d", y+1)
	}
	assert.False(t, set.Contains(date(2024, 7, 15)))
}

func TestRecessDaysEmptyOnInvertedInterval(t *testing.T) {
	assert.Empty(t, RecessDays(date(2026, 1, 10), date(2026, 1, 5)))
}
