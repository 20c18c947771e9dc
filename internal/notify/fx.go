package notify

import (
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notify",
	fx.Provide(providePublisher),
	fx.Provide(fx.Annotate(NewDispatcher, fx.As(new(Notifier)))),
)

func providePublisher(client *redis.Client, log *zap.Logger) Publisher {
	if client == nil {
		return NewLogPublisher(log)
	}
	return NewRedisPublisher(client)
}
