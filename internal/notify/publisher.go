package notify

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel is the pub/sub channel signals are published on.
const Channel = "dashboard.signals"

// RedisPublisher publishes signals as JSON over redis pub/sub.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, channel: Channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, signal Signal) error {
	payload, err := json.Marshal(signal)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// LogPublisher writes signals to the log when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.Named("notify.log")}
}

func (p *LogPublisher) Publish(_ context.Context, signal Signal) error {
	p.log.Debug("signal",
		zap.String("kind", signal.Kind),
		zap.String("path", signal.Path),
	)
	return nil
}
