// Package redis caches website stats rows in Redis in front of another StatsReaderPort.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"website-stats-service/internal/platform/logger"
	"website-stats-service/internal/stats/core/domain"
	"website-stats-service/internal/stats/core/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "stats:"

// Cache is the subset of the platform redis client used here.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type HitCounter interface {
	CacheHit()
	CacheMiss()
}

type CachedStatsReader struct {
	next    ports.StatsReaderPort
	cache   Cache
	ttl     time.Duration
	counter HitCounter
	group   singleflight.Group
	log     zerolog.Logger
}

var _ ports.StatsReaderPort = (*CachedStatsReader)(nil)

func NewCachedStatsReader(next ports.StatsReaderPort, cache Cache, ttl time.Duration, counter HitCounter) *CachedStatsReader {
	return &CachedStatsReader{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		counter: counter,
		log:     logger.Component("stats-cache"),
	}
}

func (r *CachedStatsReader) GetWebsiteStats(ctx context.Context, websiteID string, q domain.StatsQuery) ([]domain.MetricRow, error) {
	key, err := buildKey(websiteID, q)
	if err != nil {
		r.log.Warn().Err(err).Msg("cache key build failed, bypassing cache")
		return r.next.GetWebsiteStats(ctx, websiteID, q)
	}

	if rows, ok := r.lookup(ctx, key); ok {
		r.hit()
		return rows, nil
	}
	r.miss()

	// Detached from ctx so a cancelled caller does not fail the others
	// waiting on the same key.
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		if rows, ok := r.lookup(shared, key); ok {
			return rows, nil
		}
		rows, err := r.next.GetWebsiteStats(shared, websiteID, q)
		if err != nil {
			return nil, err
		}
		r.store(shared, key, rows)
		return rows, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.MetricRow), nil
	}
}

func (r *CachedStatsReader) lookup(ctx context.Context, key string) ([]domain.MetricRow, bool) {
	data, found, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	var rows []domain.MetricRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache unmarshal failed")
		return nil, false
	}
	return rows, true
}

func (r *CachedStatsReader) store(ctx context.Context, key string, rows []domain.MetricRow) {
	data, err := json.Marshal(rows)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (r *CachedStatsReader) hit() {
	if r.counter != nil {
		r.counter.CacheHit()
	}
}

func (r *CachedStatsReader) miss() {
	if r.counter != nil {
		r.counter.CacheMiss()
	}
}

type cacheKey struct {
	WebsiteID string            `json:"w"`
	Query     domain.StatsQuery `json:"q"`
}

func buildKey(websiteID string, q domain.StatsQuery) (string, error) {
	q.StartDate = q.StartDate.UTC()
	q.EndDate = q.EndDate.UTC()
	raw, err := json.Marshal(cacheKey{WebsiteID: websiteID, Query: q})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s%x", keyPrefix, sum[:16]), nil
}
