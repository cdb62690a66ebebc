package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/domain/deadline"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/prometheus"
	"github.com/juristech/prazojus/pkg/errors"
)

// DeadlineHandler serves deadline computation and record endpoints.
type DeadlineHandler struct {
	engine  *calendar.Engine
	service *deadline.Service
	metrics *prometheus.Metrics
}

// NewDeadlineHandler wires the calendar engine and record service.
func NewDeadlineHandler(engine *calendar.Engine, service *deadline.Service, metrics *prometheus.Metrics) *DeadlineHandler {
	return &DeadlineHandler{engine: engine, service: service, metrics: metrics}
}

type computeDJERequest struct {
	Availability string            `json:"availability" binding:"required"`
	Days         int               `json:"days"`
	Comarca      string            `json:"comarca"`
	Municipality string            `json:"municipality"`
	ApplyLocal   *bool             `json:"apply_local"`
	Rules        *calendar.RuleSet `json:"rules"`
}

func (r *computeDJERequest) query() calendar.Query {
	q := calendar.DefaultQuery()
	q.Comarca = r.Comarca
	q.Municipality = r.Municipality
	if r.ApplyLocal != nil {
		q.ApplyLocal = *r.ApplyLocal
	}
	if r.Rules != nil {
		q.Rules = *r.Rules
	}
	return q
}

type computeDJEResponse struct {
	Availability string `json:"availability"`
	Publication  string `json:"publication"`
	Deadline     string `json:"deadline"`
}

func toDJEResponse(res calendar.DJEResult) computeDJEResponse {
	const layout = "2006-01-02"
	return computeDJEResponse{
		Availability: res.Availability.Format(layout),
		Publication:  res.Publication.Format(layout),
		Deadline:     res.Deadline.Format(layout),
	}
}

// ComputeDJE handles POST /api/v1/deadlines/dje.  Pure computation, nothing
// is persisted.
func (h *DeadlineHandler) ComputeDJE(c *gin.Context) {
	var req computeDJERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	availability, err := parseDate(req.Availability)
	if err != nil {
		respondError(c, err)
		return
	}

	started := time.Now()
	res, err := h.engine.ComputeDJEDeadline(c.Request.Context(), availability, req.Days, req.query())
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.DeadlinesComputedTotal.Inc()
	h.metrics.DeadlineComputeDuration.Observe(time.Since(started).Seconds())

	ok(c, toDJEResponse(res))
}

type createDeadlineRequest struct {
	CaseRef  string `json:"case_ref" binding:"required"`
	Event    string `json:"event" binding:"required"`
	DueDate  string `json:"due_date" binding:"required"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
}

// Create handles POST /api/v1/deadlines.
func (h *DeadlineHandler) Create(c *gin.Context) {
	var req createDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.service.Create(c.Request.Context(), deadline.CreateInput{
		CaseRef:  req.CaseRef,
		Event:    req.Event,
		DueDate:  due,
		Priority: req.Priority,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, rec)
}

type scheduleDeadlineRequest struct {
	CaseRef      string            `json:"case_ref" binding:"required"`
	Event        string            `json:"event" binding:"required"`
	Availability string            `json:"availability" binding:"required"`
	Days         int               `json:"days"`
	Priority     string            `json:"priority"`
	Notes        string            `json:"notes"`
	Comarca      string            `json:"comarca"`
	Municipality string            `json:"municipality"`
	ApplyLocal   *bool             `json:"apply_local"`
	Rules        *calendar.RuleSet `json:"rules"`
}

type scheduleDeadlineResponse struct {
	Record      *deadline.Record   `json:"record"`
	Computation computeDJEResponse `json:"computation"`
}

// Schedule handles POST /api/v1/deadlines/schedule: computes the DJE
// deadline and registers a record due on the computed day.
func (h *DeadlineHandler) Schedule(c *gin.Context) {
	var req scheduleDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	availability, err := parseDate(req.Availability)
	if err != nil {
		respondError(c, err)
		return
	}

	started := time.Now()
	rec, res, err := h.service.ScheduleFromDJE(c.Request.Context(), deadline.ScheduleInput{
		CaseRef:      req.CaseRef,
		Event:        req.Event,
		Availability: availability,
		Days:         req.Days,
		Priority:     req.Priority,
		Notes:        req.Notes,
		Comarca:      req.Comarca,
		Municipality: req.Municipality,
		ApplyLocal:   req.ApplyLocal,
		Rules:        req.Rules,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.DeadlinesComputedTotal.Inc()
	h.metrics.DeadlineComputeDuration.Observe(time.Since(started).Seconds())

	created(c, scheduleDeadlineResponse{Record: rec, Computation: toDJEResponse(res)})
}

// List handles GET /api/v1/deadlines.
func (h *DeadlineHandler) List(c *gin.Context) {
	f := deadline.Filter{CaseRef: c.Query("case_ref")}
	switch c.Query("only_open") {
	case "true":
		v := true
		f.OnlyOpen = &v
	case "false":
		v := false
		f.OnlyOpen = &v
	case "":
	default:
		badRequest(c, "only_open must be true or false")
		return
	}

	recs, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	if recs == nil {
		recs = []deadline.Record{}
	}
	ok(c, recs)
}

// Get handles GET /api/v1/deadlines/:id.
func (h *DeadlineHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, rec)
}

// Update handles PATCH /api/v1/deadlines/:id.
func (h *DeadlineHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Event     *string `json:"event"`
		DueDate   *string `json:"due_date"`
		Priority  *string `json:"priority"`
		Completed *bool   `json:"completed"`
		Notes     *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := deadline.UpdateInput{
		Event:     req.Event,
		Priority:  req.Priority,
		Completed: req.Completed,
		Notes:     req.Notes,
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			respondError(c, err)
			return
		}
		in.DueDate = &due
	}

	rec, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, rec)
}

// Complete handles POST /api/v1/deadlines/:id/complete.
func (h *DeadlineHandler) Complete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rec, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, rec)
}

// Delete handles DELETE /api/v1/deadlines/:id.
func (h *DeadlineHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.Newf(errors.ErrCodeBadRequest, "invalid deadline id %q", c.Param("id"))
	}
	return id, nil
}
