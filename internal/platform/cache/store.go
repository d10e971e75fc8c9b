// internal/platform/cache/store.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fostercare-intake/internal/common/config"
	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/metrics"
	"fostercare-intake/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	overviewKeyPrefix = "household:overview:"
	candidatesKey     = "staffing:candidates"
)

// Store is a best-effort read-through cache in front of the data service.
// A miss or a redis failure is never an error to the caller's workflow; the
// REST client falls through to the remote fetch.
type Store struct {
	client       *redis.Client
	overviewTTL  time.Duration
	candidateTTL time.Duration
}

func NewStore(redisCfg config.RedisConfig, cacheCfg config.CacheConfig) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisCfg.Address,
		Password:     redisCfg.Password,
		DB:           redisCfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return &Store{
		client:       rdb,
		overviewTTL:  cacheCfg.OverviewTTL,
		candidateTTL: cacheCfg.CandidateTTL,
	}
}

// NewStoreWithClient wires an existing client; used by tests with miniredis.
func NewStoreWithClient(client *redis.Client, cacheCfg config.CacheConfig) *Store {
	return &Store{
		client:       client,
		overviewTTL:  cacheCfg.OverviewTTL,
		candidateTTL: cacheCfg.CandidateTTL,
	}
}

// Ping tests the redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return apierrors.NewCacheUnavailableError(fmt.Errorf("redis ping failed: %w", err))
	}
	return nil
}

// Close closes the redis connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// GetOverview returns the cached projection for accountID, or nil on miss.
func (s *Store) GetOverview(ctx context.Context, accountID string) *models.OverviewProjection {
	raw, err := s.client.Get(ctx, overviewKeyPrefix+accountID).Result()
	if err == redis.Nil {
		metrics.CacheLookups.WithLabelValues("overview", "miss").Inc()
		return nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("overview", "error").Inc()
		return nil
	}
	var projection models.OverviewProjection
	if err := json.Unmarshal([]byte(raw), &projection); err != nil {
		metrics.CacheLookups.WithLabelValues("overview", "error").Inc()
		return nil
	}
	metrics.CacheLookups.WithLabelValues("overview", "hit").Inc()
	return &projection
}

// SetOverview stores the projection with the configured TTL.
func (s *Store) SetOverview(ctx context.Context, accountID string, projection *models.OverviewProjection) error {
	data, err := json.Marshal(projection)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, overviewKeyPrefix+accountID, data, s.overviewTTL).Err()
}

// InvalidateOverview drops the cached projection so the next pull hits the
// data service. Called after every successful mutation against the account.
func (s *Store) InvalidateOverview(ctx context.Context, accountID string) error {
	return s.client.Del(ctx, overviewKeyPrefix+accountID).Err()
}

// GetCandidates returns the cached candidate list, or nil on miss.
func (s *Store) GetCandidates(ctx context.Context) []models.CaseworkerCandidate {
	raw, err := s.client.Get(ctx, candidatesKey).Result()
	if err == redis.Nil {
		metrics.CacheLookups.WithLabelValues("candidates", "miss").Inc()
		return nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("candidates", "error").Inc()
		return nil
	}
	var candidates []models.CaseworkerCandidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		metrics.CacheLookups.WithLabelValues("candidates", "error").Inc()
		return nil
	}
	metrics.CacheLookups.WithLabelValues("candidates", "hit").Inc()
	return candidates
}

// SetCandidates stores the candidate list with the configured TTL.
func (s *Store) SetCandidates(ctx context.Context, candidates []models.CaseworkerCandidate) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, candidatesKey, data, s.candidateTTL).Err()
}

// InvalidateCandidates drops the cached candidate list. Assignment mutations
// change case loads, so the list goes stale immediately.
func (s *Store) InvalidateCandidates(ctx context.Context) error {
	return s.client.Del(ctx, candidatesKey).Err()
}
