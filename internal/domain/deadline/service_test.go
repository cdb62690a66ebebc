package deadline

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type emptyHolidayStore struct{}

func (emptyHolidayStore) FetchRange(context.Context, time.Time, time.Time) ([]calendar.Holiday, error) {
	return nil, nil
}

// memRepo is an in-memory Repository good enough to exercise the service.
type memRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]Record
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[uuid.UUID]Record)}
}

func (r *memRepo) Create(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = *rec
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDeadlineNotFound, "deadline record not found")
	}
	return &rec, nil
}

func (r *memRepo) List(_ context.Context, f Filter) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Record
	for _, rec := range r.records {
		if f.CaseRef != "" && rec.CaseRef != f.CaseRef {
			continue
		}
		if f.OnlyOpen != nil && rec.Completed == *f.OnlyOpen {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *memRepo) Update(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; !ok {
		return errors.New(errors.ErrCodeDeadlineNotFound, "deadline record not found")
	}
	r.records[rec.ID] = *rec
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return errors.New(errors.ErrCodeDeadlineNotFound, "deadline record not found")
	}
	delete(r.records, id)
	return nil
}

func newTestService(repo Repository) *Service {
	log := logging.NewNopLogger()
	engine := calendar.NewEngine(emptyHolidayStore{}, calendar.NewResultCache(16), log)
	return NewService(repo, engine, log)
}

func TestParsePriority(t *testing.T) {
	for raw, want := range map[string]Priority{
		"":       PriorityMedium,
		"low":    PriorityLow,
		"Baixa":  PriorityLow,
		"ALTA":   PriorityHigh,
		"high":   PriorityHigh,
		"Média":  PriorityMedium,
		"medium": PriorityMedium,
	} {
		got, err := ParsePriority(raw)
		require.NoError(t, err, "label %q", raw)
		assert.Equal(t, want, got, "label %q", raw)
	}

	_, err := ParsePriority("urgentissima")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineInvalid))
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Event: "contestação", DueDate: date(2026, 3, 10)})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineInvalid), "missing case ref")

	_, err = svc.Create(ctx, CreateInput{CaseRef: "0001", DueDate: date(2026, 3, 10)})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineInvalid), "missing event")

	_, err = svc.Create(ctx, CreateInput{CaseRef: "0001", Event: "contestação"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineInvalid), "missing due date")
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(newMemRepo())

	r, err := svc.Create(context.Background(), CreateInput{
		CaseRef: "  0001234-56.2026.8.26.0100  ",
		Event:   "  contestação  ",
		DueDate: date(2026, 3, 10).Add(14 * time.Hour),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "0001234-56.2026.8.26.0100", r.CaseRef)
	assert.Equal(t, "contestação", r.Event)
	assert.Equal(t, PriorityMedium, r.Priority)
	assert.Equal(t, date(2026, 3, 10), r.DueDate, "due date is day-granular")
	assert.False(t, r.Completed)
}

func TestScheduleFromDJE(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	r, res, err := svc.ScheduleFromDJE(context.Background(), ScheduleInput{
		CaseRef:      "0001234-56.2026.8.26.0100",
		Event:        "apelação",
		Availability: date(2026, 1, 30),
		Days:         15,
		Priority:     "alta",
	})
	require.NoError(t, err)

	assert.Equal(t, date(2026, 2, 2), res.Publication)
	assert.Equal(t, date(2026, 2, 23), res.Deadline)
	assert.Equal(t, res.Deadline, r.DueDate)
	assert.Equal(t, PriorityHigh, r.Priority)

	stored, err := svc.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.DueDate, stored.DueDate)
}

func TestScheduleFromDJEHonorsQueryOverrides(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	// Default rules suspend the count over the year-end recess.
	_, res, err := svc.ScheduleFromDJE(ctx, ScheduleInput{
		CaseRef: "0001", Event: "apelação",
		Availability: date(2025, 12, 10), Days: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, date(2026, 1, 26), res.Deadline)

	// Disabling the court-general scope runs the count straight through
	// December.
	rules := calendar.DefaultRuleSet()
	rules.CourtGeneral = false
	_, res, err = svc.ScheduleFromDJE(ctx, ScheduleInput{
		CaseRef: "0001", Event: "apelação",
		Availability: date(2025, 12, 10), Days: 10,
		Rules: &rules,
	})
	require.NoError(t, err)
	assert.Equal(t, date(2025, 12, 25), res.Deadline)
}

func TestScheduleFromDJERejectsBadInput(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, _, err := svc.ScheduleFromDJE(context.Background(), ScheduleInput{
		CaseRef: "0001", Event: "x", Days: 15,
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument), "zero availability")

	_, _, err = svc.ScheduleFromDJE(context.Background(), ScheduleInput{
		CaseRef: "0001", Event: "x", Availability: date(2026, 1, 30), Days: -1,
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument), "negative days")
}

func TestUpdateAndComplete(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateInput{CaseRef: "0001", Event: "embargos", DueDate: date(2026, 3, 10)})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(ctx, r.ID, UpdateInput{Event: &blank})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineInvalid))

	newEvent := "embargos de declaração"
	newPriority := "alta"
	updated, err := svc.Update(ctx, r.ID, UpdateInput{Event: &newEvent, Priority: &newPriority})
	require.NoError(t, err)
	assert.Equal(t, newEvent, updated.Event)
	assert.Equal(t, PriorityHigh, updated.Priority)

	done, err := svc.Complete(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	_, err = svc.Update(ctx, uuid.New(), UpdateInput{Event: &newEvent})
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineNotFound))
}

func TestListFiltering(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{CaseRef: "0001", Event: "a", DueDate: date(2026, 3, 20)})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{CaseRef: "0001", Event: "b", DueDate: date(2026, 3, 10)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{CaseRef: "0002", Event: "c", DueDate: date(2026, 3, 15)})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, a.ID)
	require.NoError(t, err)

	open := true
	got, err := svc.List(ctx, Filter{CaseRef: "0001", OnlyOpen: &open})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	all, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDelete(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateInput{CaseRef: "0001", Event: "x", DueDate: date(2026, 3, 10)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, r.ID))

	_, err = svc.Get(ctx, r.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineNotFound))

	err = svc.Delete(ctx, r.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDeadlineNotFound))
}
