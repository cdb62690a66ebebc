package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/domain/deadline"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/prometheus"
	"github.com/juristech/prazojus/pkg/errors"
)

type stubHolidayStore struct{}

func (stubHolidayStore) FetchRange(context.Context, time.Time, time.Time) ([]calendar.Holiday, error) {
	return nil, nil
}

type stubDeadlineRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]deadline.Record
}

func newStubDeadlineRepo() *stubDeadlineRepo {
	return &stubDeadlineRepo{records: make(map[uuid.UUID]deadline.Record)}
}

func (r *stubDeadlineRepo) Create(_ context.Context, rec *deadline.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = *rec
	return nil
}

func (r *stubDeadlineRepo) GetByID(_ context.Context, id uuid.UUID) (*deadline.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDeadlineNotFound, "deadline record not found")
	}
	return &rec, nil
}

func (r *stubDeadlineRepo) List(context.Context, deadline.Filter) ([]deadline.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []deadline.Record
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *stubDeadlineRepo) Update(_ context.Context, rec *deadline.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; !ok {
		return errors.New(errors.ErrCodeDeadlineNotFound, "deadline record not found")
	}
	r.records[rec.ID] = *rec
	return nil
}

func (r *stubDeadlineRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return errors.New(errors.ErrCodeDeadlineNotFound, "deadline record not found")
	}
	delete(r.records, id)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logging.NewNopLogger()
	engine := calendar.NewEngine(stubHolidayStore{}, calendar.NewResultCache(32), log)
	service := deadline.NewService(newStubDeadlineRepo(), engine, log)
	h := NewDeadlineHandler(engine, service, prometheus.NewMetrics())

	r := gin.New()
	r.POST("/api/v1/deadlines/dje", h.ComputeDJE)
	r.POST("/api/v1/deadlines/schedule", h.Schedule)
	r.POST("/api/v1/deadlines", h.Create)
	r.GET("/api/v1/deadlines/:id", h.Get)
	r.POST("/api/v1/deadlines/:id/complete", h.Complete)
	r.DELETE("/api/v1/deadlines/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestComputeDJEEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/deadlines/dje", gin.H{
		"availability": "2026-01-30",
		"days":         15,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp computeDJEResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-02-02", resp.Publication)
	assert.Equal(t, "2026-02-23", resp.Deadline)
}

func TestComputeDJEEndpointRejectsBadInput(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/deadlines/dje", gin.H{
		"availability": "30/01/2026",
		"days":         15,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/deadlines/dje", gin.H{
		"availability": "2026-01-30",
		"days":         -3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.ErrCodeInvalidArgument.String(), resp.Code)
}

func TestScheduleEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/deadlines/schedule", gin.H{
		"case_ref":     "0001234-56.2026.8.26.0100",
		"event":        "apelação",
		"availability": "2026-01-30",
		"days":         15,
		"priority":     "alta",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp scheduleDeadlineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-02-23", resp.Computation.Deadline)
	require.NotNil(t, resp.Record)
	assert.Equal(t, deadline.PriorityHigh, resp.Record.Priority)
}

func TestScheduleEndpointHonorsRules(t *testing.T) {
	r := newTestRouter(t)

	// With the court-general scope disabled the count ignores the year-end
	// recess, matching the behavior of the plain compute endpoint.
	w := doJSON(t, r, http.MethodPost, "/api/v1/deadlines/schedule", gin.H{
		"case_ref":     "0001",
		"event":        "apelação",
		"availability": "2025-12-10",
		"days":         10,
		"rules": gin.H{
			"national":      true,
			"state":         true,
			"court_general": false,
			"court_local":   true,
			"municipal":     true,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp scheduleDeadlineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-12-25", resp.Computation.Deadline)
}

func TestDeadlineRecordLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/deadlines", gin.H{
		"case_ref": "0001",
		"event":    "contestação",
		"due_date": "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rec deadline.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))

	w = doJSON(t, r, http.MethodPost, "/api/v1/deadlines/"+rec.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var done deadline.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	assert.True(t, done.Completed)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/deadlines/"+rec.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/deadlines/"+rec.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRejectsMalformedID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/deadlines/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
