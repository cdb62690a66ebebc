package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/juristech/prazojus/internal/domain/calendar"
	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
)

const holidayKeyPrefix = "holidays:"

// CachedHolidayStore is a read-through decorator over a holiday store.
// Range reads are served from Redis when possible; misses fall through to
// the inner store under singleflight so concurrent identical ranges produce
// one database query.  Redis failures degrade to direct reads, never to
// computation errors.
type CachedHolidayStore struct {
	inner  calendar.HolidayStore
	client *Client
	log    logging.Logger
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

var _ calendar.HolidayStore = (*CachedHolidayStore)(nil)

// NewCachedHolidayStore wraps inner with a Redis cache.  Entries live under
// prefix and expire after ttl.
func NewCachedHolidayStore(inner calendar.HolidayStore, client *Client, log logging.Logger, prefix string, ttl time.Duration) *CachedHolidayStore {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &CachedHolidayStore{
		inner:  inner,
		client: client,
		log:    log.Named("holiday_cache"),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *CachedHolidayStore) key(start, end time.Time) string {
	return s.prefix + holidayKeyPrefix + start.Format("2006-01-02") + ":" + end.Format("2006-01-02")
}

// FetchRange implements calendar.HolidayStore.
func (s *CachedHolidayStore) FetchRange(ctx context.Context, startInclusive, endInclusive time.Time) ([]calendar.Holiday, error) {
	start := calendar.DateOf(startInclusive)
	end := calendar.DateOf(endInclusive)
	key := s.key(start, end)

	if raw, err := s.client.Get(ctx, key); err == nil {
		var out []calendar.Holiday
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		s.log.Warn("corrupt cached holiday entry dropped", logging.String("key", key))
		_ = s.client.Del(ctx, key)
	} else if err != goredis.Nil {
		s.log.Warn("holiday cache read failed, falling through", logging.Err(err))
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		rows, err := s.inner.FetchRange(ctx, start, end)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(rows); err == nil {
			if err := s.client.Set(ctx, key, raw, s.ttl); err != nil {
				s.log.Warn("holiday cache write failed", logging.Err(err))
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]calendar.Holiday), nil
}

// Invalidate drops every cached holiday range.  Call after holiday data
// changes, together with the engine's in-process cache clear.
func (s *CachedHolidayStore) Invalidate(ctx context.Context) (int64, error) {
	return s.client.DeleteByPrefix(ctx, s.prefix+holidayKeyPrefix)
}
