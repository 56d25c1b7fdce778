// Package redis implements cache.Cache on a Redis instance via rueidis,
// for deployments that externalize the cache. Every backend error is
// treated as an unconditional miss — the cache must never fail a request.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
)

var _ cache.Cache = (*Store)(nil)

// Config holds connection parameters for the Redis cache.
type Config struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// Store is a Redis-backed cache.
type Store struct {
	client rueidis.Client
	prefix string
	logger *zap.Logger
}

// NewStore connects to Redis.
func NewStore(cfg Config, logger *zap.Logger) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, prefix: cfg.KeyPrefix, logger: logger}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// Get retrieves a value by key. Missing keys and backend errors both
// report a miss; only the latter is logged.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	cmd := s.client.B().Get().Key(s.prefix + key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			s.logger.Warn("redis cache get failed, treating as miss",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores a value with the given TTL. Redis expires the entry itself,
// so there is no lazy-expiry path on this backend. Write failures are
// logged and swallowed.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	cmd := s.client.B().Set().Key(s.prefix + key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		s.logger.Warn("redis cache set failed",
			zap.String("key", key), zap.Error(err))
	}
}
