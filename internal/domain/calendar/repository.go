package calendar

import (
	"context"
	"time"
)

// HolidayStore is the engine's only external collaborator: a read-only
// lookup of holiday rows by date range.  Both bounds are inclusive and
// day-granular; implementations over timestamp columns must query with an
// exclusive upper bound of endInclusive plus one day so midnight-stored
// rows on the last day are not truncated away.
//
// Store failures (connectivity, timeouts) propagate unchanged; the engine
// performs no retries.
type HolidayStore interface {
	FetchRange(ctx context.Context, startInclusive, endInclusive time.Time) ([]Holiday, error)
}

// HolidayRepository extends HolidayStore with the write operations used by
// the import tooling and the admin API.  The engine itself never writes.
type HolidayRepository interface {
	HolidayStore

	// Save inserts h, or updates description/source when a row with the same
	// (date, scope, locality) already exists.  The stored ID is written back
	// into h.
	Save(ctx context.Context, h *Holiday) error

	// DeleteByID removes a single row.
	DeleteByID(ctx context.Context, id int64) error
}
