package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
)

// CacheInvalidator clears any out-of-process holiday caches.  Nil-able: when
// the Redis layer is disabled only the in-process cache is cleared.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) (int64, error)
}

// HolidayHandler serves holiday maintenance endpoints.
type HolidayHandler struct {
	repo        calendar.HolidayRepository
	engine      *calendar.Engine
	invalidator CacheInvalidator
	log         logging.Logger
}

// NewHolidayHandler wires the holiday repository and the engine whose cache
// must be cleared when rows change.
func NewHolidayHandler(repo calendar.HolidayRepository, engine *calendar.Engine, invalidator CacheInvalidator, log logging.Logger) *HolidayHandler {
	return &HolidayHandler{repo: repo, engine: engine, invalidator: invalidator, log: log.Named("holiday_handler")}
}

// List handles GET /api/v1/holidays?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *HolidayHandler) List(c *gin.Context) {
	from, err := parseDate(c.DefaultQuery("from", ""))
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := parseDate(c.DefaultQuery("to", ""))
	if err != nil {
		respondError(c, err)
		return
	}
	if to.Before(from) {
		badRequest(c, "to must not precede from")
		return
	}

	rows, err := h.repo.FetchRange(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	if rows == nil {
		rows = []calendar.Holiday{}
	}
	ok(c, rows)
}

type createHolidayRequest struct {
	Date        string `json:"date" binding:"required"`
	Scope       string `json:"scope" binding:"required"`
	Locality    string `json:"locality"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Create handles POST /api/v1/holidays.  Saving a row invalidates every
// holiday cache so the next computation sees it.
func (h *HolidayHandler) Create(c *gin.Context) {
	var req createHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	day, err := parseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	holiday := calendar.Holiday{
		Date:        day,
		Scope:       req.Scope,
		Locality:    req.Locality,
		Description: req.Description,
		Source:      req.Source,
	}
	if err := h.repo.Save(c.Request.Context(), &holiday); err != nil {
		respondError(c, err)
		return
	}

	h.clearCaches(c)
	created(c, holiday)
}

// ClearCache handles POST /api/v1/cache/clear: drops both the in-process
// memoization cache and the shared Redis ranges.
func (h *HolidayHandler) ClearCache(c *gin.Context) {
	removed := h.clearCaches(c)
	ok(c, gin.H{"redis_keys_removed": removed})
}

func (h *HolidayHandler) clearCaches(c *gin.Context) int64 {
	h.engine.ClearCache()

	var removed int64
	if h.invalidator != nil {
		n, err := h.invalidator.Invalidate(c.Request.Context())
		if err != nil {
			h.log.Warn("redis holiday cache invalidation failed", logging.Err(err))
		}
		removed = n
	}
	return removed
}
