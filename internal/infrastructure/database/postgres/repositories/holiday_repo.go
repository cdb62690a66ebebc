package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/pkg/errors"
)

// HolidayRepository persists holiday rows and serves the calendar engine's
// range reads.
type HolidayRepository struct {
	db  queryExecutor
	log logging.Logger
}

// NewHolidayRepository builds a repository over the given executor.
func NewHolidayRepository(db queryExecutor, log logging.Logger) *HolidayRepository {
	return &HolidayRepository{db: db, log: log.Named("holiday_repo")}
}

var _ calendar.HolidayRepository = (*HolidayRepository)(nil)

const holidayColumns = `id, holiday_date, scope, locality, description, source`

// FetchRange returns every row with a date inside [startInclusive,
// endInclusive].  The SQL upper bound is exclusive on the day after the end,
// so rows stored with a time-of-day component are still captured.
func (r *HolidayRepository) FetchRange(ctx context.Context, startInclusive, endInclusive time.Time) ([]calendar.Holiday, error) {
	start := calendar.DateOf(startInclusive)
	endExclusive := calendar.DateOf(endInclusive).AddDate(0, 0, 1)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+holidayColumns+`
		FROM holidays
		WHERE holiday_date >= $1 AND holiday_date < $2
		ORDER BY holiday_date`, start, endExclusive)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query holidays")
	}
	defer rows.Close()

	var out []calendar.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "holiday row iteration failed")
	}
	return out, nil
}

// Save inserts a holiday, or updates description and source when a row for
// the same date, scope and locality already exists.  The row's ID is filled
// in on return.
func (r *HolidayRepository) Save(ctx context.Context, h *calendar.Holiday) error {
	if err := h.Validate(); err != nil {
		return err
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO holidays (holiday_date, scope, locality, description, source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (holiday_date, scope, locality)
		DO UPDATE SET description = EXCLUDED.description, source = EXCLUDED.source
		RETURNING id`,
		calendar.DateOf(h.Date), h.Scope, h.Locality, h.Description, h.Source,
	).Scan(&h.ID)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save holiday")
	}
	return nil
}

// DeleteByID removes one holiday row.
func (r *HolidayRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete holiday")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Newf(errors.ErrCodeNotFound, "holiday %d not found", id)
	}
	return nil
}

func scanHoliday(s scanner) (*calendar.Holiday, error) {
	var (
		h        calendar.Holiday
		locality sql.NullString
		desc     sql.NullString
		source   sql.NullString
	)
	if err := s.Scan(&h.ID, &h.Date, &h.Scope, &locality, &desc, &source); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan holiday row")
	}
	h.Locality = locality.String
	h.Description = desc.String
	h.Source = source.String
	h.Date = calendar.DateOf(h.Date)
	return &h, nil
}
