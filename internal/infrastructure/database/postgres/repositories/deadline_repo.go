package repositories

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/juristech/prazojus/internal/domain/deadline"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/pkg/errors"
)

// DeadlineRepository persists deadline records.
type DeadlineRepository struct {
	db  queryExecutor
	log logging.Logger
}

// NewDeadlineRepository builds a repository over the given executor.
func NewDeadlineRepository(db queryExecutor, log logging.Logger) *DeadlineRepository {
	return &DeadlineRepository{db: db, log: log.Named("deadline_repo")}
}

var _ deadline.Repository = (*DeadlineRepository)(nil)

const deadlineColumns = `id, case_ref, event, due_date, priority, completed, notes, created_at, updated_at`

// Create inserts a new record.
func (r *DeadlineRepository) Create(ctx context.Context, rec *deadline.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deadlines (`+deadlineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.CaseRef, rec.Event, rec.DueDate, rec.Priority,
		rec.Completed, rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert deadline record")
	}
	return nil
}

// GetByID fetches one record.
func (r *DeadlineRepository) GetByID(ctx context.Context, id uuid.UUID) (*deadline.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+deadlineColumns+` FROM deadlines WHERE id = $1`, id)

	rec, err := scanDeadline(row)
	if err != nil {
		if isNoRows(err) {
			return nil, errors.Newf(errors.ErrCodeDeadlineNotFound, "deadline record %s not found", id)
		}
		return nil, err
	}
	return rec, nil
}

// List returns records matching the filter, ordered open-first, then by due
// date, then newest first.
func (r *DeadlineRepository) List(ctx context.Context, f deadline.Filter) ([]deadline.Record, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.CaseRef != "" {
		args = append(args, f.CaseRef)
		conds = append(conds, "case_ref = $"+strconv.Itoa(len(args)))
	}
	if f.OnlyOpen != nil {
		args = append(args, !*f.OnlyOpen)
		conds = append(conds, "completed = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + deadlineColumns + ` FROM deadlines`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY completed ASC, due_date ASC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query deadline records")
	}
	defer rows.Close()

	var out []deadline.Record
	for rows.Next() {
		rec, err := scanDeadline(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "deadline row iteration failed")
	}
	return out, nil
}

// Update rewrites all mutable columns of an existing record.
func (r *DeadlineRepository) Update(ctx context.Context, rec *deadline.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deadlines
		SET event = $2, due_date = $3, priority = $4, completed = $5,
		    notes = $6, updated_at = $7
		WHERE id = $1`,
		rec.ID, rec.Event, rec.DueDate, rec.Priority, rec.Completed,
		rec.Notes, rec.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update deadline record")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Newf(errors.ErrCodeDeadlineNotFound, "deadline record %s not found", rec.ID)
	}
	return nil
}

// Delete removes a record permanently.
func (r *DeadlineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deadlines WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete deadline record")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Newf(errors.ErrCodeDeadlineNotFound, "deadline record %s not found", id)
	}
	return nil
}

func scanDeadline(s scanner) (*deadline.Record, error) {
	var (
		rec   deadline.Record
		notes sql.NullString
	)
	err := s.Scan(&rec.ID, &rec.CaseRef, &rec.Event, &rec.DueDate, &rec.Priority,
		&rec.Completed, &notes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan deadline row")
	}
	rec.Notes = notes.String
	return &rec, nil
}

func isNoRows(err error) bool {
	for err != nil {
		if err == sql.ErrNoRows {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
