package db

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/dashboard/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewRedis returns the shared redis client, or nil when REDIS_ADDR is unset.
// An unreachable server is logged at startup but does not stop the app.
func NewRedis(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	if !cfg.Redis.Enabled() {
		return nil
	}

	log = log.Named("redis")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}
