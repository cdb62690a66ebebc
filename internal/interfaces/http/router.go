// Package http assembles the gin router and the HTTP server around it.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/prometheus"
	"github.com/juristech/prazojus/internal/interfaces/http/handlers"
	"github.com/juristech/prazojus/internal/interfaces/http/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Deadlines *handlers.DeadlineHandler
	Holidays  *handlers.HolidayHandler
	Health    *handlers.HealthHandler
	Metrics   *prometheus.Metrics
	Log       logging.Logger
	Mode      string // gin mode: "debug" | "release" | "test"
}

// NewRouter builds the full route table.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging(deps.Log, deps.Metrics))

	r.GET("/healthz", deps.Health.Live)
	r.GET("/readyz", deps.Health.Ready)
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/deadlines/dje", deps.Deadlines.ComputeDJE)
		v1.POST("/deadlines/schedule", deps.Deadlines.Schedule)
		v1.POST("/deadlines", deps.Deadlines.Create)
		v1.GET("/deadlines", deps.Deadlines.List)
		v1.GET("/deadlines/:id", deps.Deadlines.Get)
		v1.PATCH("/deadlines/:id", deps.Deadlines.Update)
		v1.POST("/deadlines/:id/complete", deps.Deadlines.Complete)
		v1.DELETE("/deadlines/:id", deps.Deadlines.Delete)

		v1.GET("/holidays", deps.Holidays.List)
		v1.POST("/holidays", deps.Holidays.Create)
		v1.POST("/cache/clear", deps.Holidays.ClearCache)
	}

	return r
}
