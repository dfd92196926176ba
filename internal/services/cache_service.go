// internal/services/cache_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mittirang/mittirang-backend/internal/config"
	"github.com/mittirang/mittirang-backend/internal/metrics"
)

// CacheService is a cache-aside helper over Redis. A service without a
// client is disabled: reads always miss and writes do nothing.
type CacheService struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCacheService connects to Redis and falls back to a disabled cache when
// Redis is turned off or cannot be reached.
func NewCacheService(cfg config.RedisConfig) *CacheService {
	if !cfg.Enabled {
		logrus.Info("Redis cache disabled")
		return &CacheService{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis not reachable, running without cache")
		client.Close()
		return &CacheService{}
	}

	logrus.WithField("addr", client.Options().Addr).Info("Redis cache connected")
	return NewCacheServiceWithClient(client, cfg.Prefix, cfg.TTL)
}

func NewCacheServiceWithClient(client *redis.Client, prefix string, ttl time.Duration) *CacheService {
	if prefix != "" {
		prefix += ":"
	}
	return &CacheService{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.client != nil
}

// Get decodes the cached value into dest and reports whether it was a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheMisses.WithLabelValues(cacheName(key)).Inc()
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	metrics.CacheHits.WithLabelValues(cacheName(key)).Inc()
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if !s.Enabled() {
		return nil
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// DeletePattern removes every key matching a glob pattern under the prefix.
func (s *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete error: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *CacheService) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}

// cacheName is the metrics label for a key: its first segment.
func cacheName(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
