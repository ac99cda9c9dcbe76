package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/checkout"
	"github.com/jafarshop/streamcheckout/internal/config"
)

// ErrSessionNotFound is returned for unknown or expired sessions
var ErrSessionNotFound = errors.New("session not found")

// Store keeps checkout sessions between requests
type Store interface {
	Get(ctx context.Context, id string) (*checkout.Session, error)
	Save(ctx context.Context, s *checkout.Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a fresh session identifier
func NewID() string {
	return uuid.NewString()
}

// New builds the store selected by configuration. For Redis the connection
// is checked before returning.
func New(ctx context.Context, cfg config.SessionConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		logger.Info("Using Redis session store", zap.String("addr", cfg.RedisAddr))
		return NewRedisStore(client, cfg.TTL), nil
	default:
		logger.Info("Using in-memory session store")
		return NewMemoryStore(cfg.TTL), nil
	}
}

func clone(s *checkout.Session) *checkout.Session {
	c := *s
	if s.Notice != nil {
		n := *s.Notice
		c.Notice = &n
	}
	return &c
}
