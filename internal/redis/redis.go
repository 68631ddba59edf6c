package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"acadiasafe/internal/config"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Redis backs the campus listing cache and the notification queue.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects and fails fast when the server does not answer a ping.
// ReadTimeout is disabled because the notifier blocks in BRPOP with its own
// timeout.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
		ReadTimeout: -1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("redis unreachable", slog.String("addr", cfg.Addr), slog.Any("error", err))
		if cerr := rdb.Close(); cerr != nil {
			logger.Warn("redis close failed", slog.Any("error", cerr))
		}
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	logger.Info("redis connected", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))

	return &Redis{Client: rdb}, nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}

// Ping reports liveness for the health endpoint.
func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
