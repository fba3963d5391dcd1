// Package cache provides the Redis-backed snapshot cache in front of the
// live odds feed.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dock108/theoryline/internal/models"
)

// OddsSnapshotEntry represents one cached odds board with metadata.
type OddsSnapshotEntry struct {
	Rows      []models.Event `json:"rows"`
	CachedAt  time.Time      `json:"cached_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// OddsCacheStats tracks cache performance metrics.
type OddsCacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	mu     sync.RWMutex
}

// LiveOddsProvider is the upstream the cache decorates.
type LiveOddsProvider interface {
	CurrentOdds(ctx context.Context, leagueID string) ([]models.Event, error)
}

// CachedOddsProvider serves the live odds board from Redis, falling through
// to the upstream provider on a miss. Cache failures degrade to the upstream
// rather than failing the caller.
type CachedOddsProvider struct {
	upstream LiveOddsProvider
	redis    *redis.Client
	ttl      time.Duration
	stats    *OddsCacheStats
	prefix   string
	logger   *logrus.Logger
}

// NewCachedOddsProvider wraps an upstream live-odds provider with a Redis
// snapshot cache.
func NewCachedOddsProvider(upstream LiveOddsProvider, redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedOddsProvider {
	return &CachedOddsProvider{
		upstream: upstream,
		redis:    redisClient,
		ttl:      ttl,
		stats:    &OddsCacheStats{},
		prefix:   "odds_board:",
		logger:   logger,
	}
}

// CurrentOdds returns the cached board for a league, refreshing it from the
// upstream when the cache has no usable entry.
func (c *CachedOddsProvider) CurrentOdds(ctx context.Context, leagueID string) ([]models.Event, error) {
	if rows, ok := c.get(ctx, leagueID); ok {
		return rows, nil
	}

	rows, err := c.upstream.CurrentOdds(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	c.set(ctx, leagueID, rows)
	return rows, nil
}

func (c *CachedOddsProvider) get(ctx context.Context, leagueID string) ([]models.Event, bool) {
	cacheKey := c.prefix + leagueID

	data, err := c.redis.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		c.miss()
		return nil, false
	}
	if err != nil {
		c.logger.WithError(err).WithField("league", leagueID).Warn("odds cache read failed")
		c.miss()
		return nil, false
	}

	var entry OddsSnapshotEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		c.logger.WithError(err).WithField("league", leagueID).Warn("odds cache entry undecodable")
		c.miss()
		return nil, false
	}

	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()

	return entry.Rows, true
}

func (c *CachedOddsProvider) set(ctx context.Context, leagueID string, rows []models.Event) {
	cacheKey := c.prefix + leagueID

	now := time.Now().UTC()
	entry := OddsSnapshotEntry{
		Rows:      rows,
		CachedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.WithError(err).WithField("league", leagueID).Warn("odds cache entry unencodable")
		return
	}

	if err := c.redis.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("league", leagueID).Warn("odds cache write failed")
		return
	}

	c.stats.mu.Lock()
	c.stats.Sets++
	c.stats.mu.Unlock()
}

func (c *CachedOddsProvider) miss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}

// GetStats returns current cache statistics.
func (c *CachedOddsProvider) GetStats() OddsCacheStats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()
	return OddsCacheStats{
		Hits:   c.stats.Hits,
		Misses: c.stats.Misses,
		Sets:   c.stats.Sets,
	}
}

// Invalidate drops the cached board for a league.
func (c *CachedOddsProvider) Invalidate(ctx context.Context, leagueID string) error {
	return c.redis.Del(ctx, c.prefix+leagueID).Err()
}
