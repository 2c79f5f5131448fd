package sequence

import (
	"fmt"

	"github.com/gescom/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Factory creates sequencers based on configuration. Redis is preferred;
// when it is unavailable the factory falls back to the database-backed
// sequencer so number generation stays atomic.
type Factory struct {
	redisConfig   config.RedisConfig
	db            *gorm.DB
	logger        *zap.Logger
	allowFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithDatabaseFallback controls whether to fall back to the database-backed
// sequencer when Redis is unavailable. Default is true.
func WithDatabaseFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowFallback = allow
	}
}

// NewFactory creates a new sequencer factory
func NewFactory(cfg config.RedisConfig, db *gorm.DB, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:   cfg,
		db:            db,
		logger:        zap.NewNop(),
		allowFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisSequencer creates a Redis-based sequencer
func (f *Factory) CreateRedisSequencer() (Sequencer, error) {
	seq, err := NewRedisSequencer(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis sequencer: %w", err)
	}

	return seq, nil
}

// CreateSequencer creates a sequencer, preferring Redis and falling back to
// the database when allowed
func (f *Factory) CreateSequencer() (Sequencer, error) {
	seq, err := f.CreateRedisSequencer()
	if err == nil {
		f.logger.Info("using Redis document sequencer")
		return seq, nil
	}

	if !f.allowFallback {
		return nil, fmt.Errorf("Redis required for sequences but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to database-backed sequencer",
		zap.Error(err),
	)
	return NewGormSequencer(f.db), nil
}
