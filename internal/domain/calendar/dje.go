package calendar

import (
	"context"
	"time"

	"github.com/juristech/prazojus/pkg/errors"
)

// DJEResult carries the three dates of an electronic-gazette deadline
// computation.
type DJEResult struct {
	// Availability is the day the act became available in the gazette,
	// normalized to day granularity.
	Availability time.Time `json:"availability"`

	// Publication is the first business day strictly after Availability.
	// The deadline count starts from here, never from Availability.
	Publication time.Time `json:"publication"`

	// Deadline is the final day of the period: Publication plus the
	// requested number of business days, excluding Publication itself.
	Deadline time.Time `json:"deadline"`
}

// ComputeDJEDeadline applies the two-step electronic-gazette rule: the
// publication date is the next business day strictly after the availability
// date, and the deadline runs for days business days counted from the day
// after publication.
func (e *Engine) ComputeDJEDeadline(ctx context.Context, availability time.Time, days int, q Query) (DJEResult, error) {
	if availability.IsZero() {
		return DJEResult{}, errors.InvalidArgument("availability date is required")
	}
	if days < 0 {
		return DJEResult{}, errors.InvalidArgument("deadline length must not be negative")
	}
	availability = DateOf(availability)

	publication, err := e.NextBusinessDay(ctx, availability.AddDate(0, 0, 1), q)
	if err != nil {
		return DJEResult{}, err
	}

	deadline, err := e.AddBusinessDays(ctx, publication, days, true, q)
	if err != nil {
		return DJEResult{}, err
	}

	return DJEResult{
		Availability: availability,
		Publication:  publication,
		Deadline:     deadline,
	}, nil
}
