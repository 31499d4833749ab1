// Package producer publishes export jobs onto a redis list used as a work queue.
package producer

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisProducer struct {
	Client redis.Cmdable
}

func NewRedisProducer(client redis.Cmdable) *RedisProducer {
	return &RedisProducer{Client: client}
}

// Send appends message to the tail of queue. Consumers pop from the head.
func (p *RedisProducer) Send(ctx context.Context, queue string, message []byte) error {
	if err := p.Client.RPush(ctx, queue, string(message)).Err(); err != nil {
		return fmt.Errorf("queue %s: %w", queue, err)
	}
	return nil
}
