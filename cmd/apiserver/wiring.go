package main

import (
	"context"
	"time"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/database/redis"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/prometheus"
)

// instrumentedStore counts range queries reaching the holiday store.
type instrumentedStore struct {
	inner   calendar.HolidayStore
	metrics *prometheus.Metrics
}

func (s instrumentedStore) FetchRange(ctx context.Context, start, end time.Time) ([]calendar.Holiday, error) {
	s.metrics.HolidayFetchesTotal.Inc()
	return s.inner.FetchRange(ctx, start, end)
}

// redisHealth adapts the redis client to the health-check contract.
type redisHealth struct {
	client *redis.Client
}

func (r redisHealth) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx)
}
