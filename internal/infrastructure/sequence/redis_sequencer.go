package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSequencer implements Sequencer using Redis INCR.
// INCR is atomic on the server, so concurrent callers across any number of
// process instances never observe the same value.
type RedisSequencer struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSequencer creates a Redis-backed sequencer and verifies connectivity
func NewRedisSequencer(cfg RedisConfig) (*RedisSequencer, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSequencer{
		client:    client,
		keyPrefix: "doc:seq:",
	}, nil
}

// NewRedisSequencerWithClient creates a sequencer with an existing Redis client
func NewRedisSequencerWithClient(client *redis.Client, keyPrefix string) *RedisSequencer {
	if keyPrefix == "" {
		keyPrefix = "doc:seq:"
	}
	return &RedisSequencer{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisSequencer) key(series, period string) string {
	return s.keyPrefix + series + ":" + period
}

// Next atomically increments and returns the counter for the series/period
func (s *RedisSequencer) Next(ctx context.Context, series, period string) (int64, error) {
	n, err := s.client.Incr(ctx, s.key(series, period)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}
	return n, nil
}

// Current returns the last value handed out for the series/period, 0 if none
func (s *RedisSequencer) Current(ctx context.Context, series, period string) (int64, error) {
	n, err := s.client.Get(ctx, s.key(series, period)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence: %w", err)
	}
	return n, nil
}

// Close closes the Redis client
func (s *RedisSequencer) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisSequencer) GetClient() *redis.Client {
	return s.client
}

var _ Sequencer = (*RedisSequencer)(nil)
