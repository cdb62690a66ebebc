package deadline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/pkg/errors"
)

// Service owns the deadline-record lifecycle.  Records land here either by
// direct registration with a known due date, or through ScheduleFromDJE,
// which derives the due date with the calendar engine first.
type Service struct {
	repo   Repository
	engine *calendar.Engine
	log    logging.Logger
	now    func() time.Time
}

// NewService wires the record repository and the calendar engine.
func NewService(repo Repository, engine *calendar.Engine, log logging.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		log:    log.Named("deadline"),
		now:    time.Now,
	}
}

// Create registers a record with an already-known due date.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Record, error) {
	priority, err := in.validate()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &Record{
		ID:        uuid.New(),
		CaseRef:   strings.TrimSpace(in.CaseRef),
		Event:     strings.TrimSpace(in.Event),
		DueDate:   calendar.DateOf(in.DueDate),
		Priority:  priority,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("deadline record created",
		logging.String("id", r.ID.String()),
		logging.String("case_ref", r.CaseRef),
		logging.Time("due_date", r.DueDate))
	return r, nil
}

// ScheduleInput parameterises a gazette-driven registration.  ApplyLocal and
// Rules are optional overrides; nil keeps the default query, which honors
// every scope.
type ScheduleInput struct {
	CaseRef      string    `json:"case_ref"`
	Event        string    `json:"event"`
	Availability time.Time `json:"availability"`
	Days         int       `json:"days"`
	Priority     string    `json:"priority,omitempty"`
	Notes        string    `json:"notes,omitempty"`

	Comarca      string            `json:"comarca,omitempty"`
	Municipality string            `json:"municipality,omitempty"`
	ApplyLocal   *bool             `json:"apply_local,omitempty"`
	Rules        *calendar.RuleSet `json:"rules,omitempty"`
}

// ScheduleFromDJE computes the deadline for an act made available in the
// electronic gazette and registers a record due on the computed final day.
// The full computation (availability, publication, deadline) is returned so
// callers can show how the date was derived.
func (s *Service) ScheduleFromDJE(ctx context.Context, in ScheduleInput) (*Record, calendar.DJEResult, error) {
	q := calendar.DefaultQuery()
	q.Comarca = in.Comarca
	q.Municipality = in.Municipality
	if in.ApplyLocal != nil {
		q.ApplyLocal = *in.ApplyLocal
	}
	if in.Rules != nil {
		q.Rules = *in.Rules
	}

	res, err := s.engine.ComputeDJEDeadline(ctx, in.Availability, in.Days, q)
	if err != nil {
		return nil, calendar.DJEResult{}, err
	}

	r, err := s.Create(ctx, CreateInput{
		CaseRef:  in.CaseRef,
		Event:    in.Event,
		DueDate:  res.Deadline,
		Priority: in.Priority,
		Notes:    in.Notes,
	})
	if err != nil {
		return nil, calendar.DJEResult{}, err
	}
	return r, res, nil
}

// Get fetches one record by identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns records matching the filter, most pressing first.
func (s *Service) List(ctx context.Context, f Filter) ([]Record, error) {
	return s.repo.List(ctx, f)
}

// Update applies a partial update.  String fields are trimmed; the event
// may change but never become blank.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Record, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Event != nil {
		event := strings.TrimSpace(*in.Event)
		if event == "" {
			return nil, errors.New(errors.ErrCodeDeadlineInvalid, "event cannot be blank")
		}
		r.Event = event
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return nil, errors.New(errors.ErrCodeDeadlineInvalid, "due date cannot be zero")
		}
		r.DueDate = calendar.DateOf(*in.DueDate)
	}
	if in.Priority != nil {
		p, err := ParsePriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		r.Priority = p
	}
	if in.Completed != nil {
		r.Completed = *in.Completed
	}
	if in.Notes != nil {
		r.Notes = strings.TrimSpace(*in.Notes)
	}

	r.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Complete marks a record done.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Record, error) {
	done := true
	return s.Update(ctx, id, UpdateInput{Completed: &done})
}

// Delete removes a record permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("deadline record deleted", logging.String("id", id.String()))
	return nil
}
