package cache

import (
	"context"
	"time"

	"notesapi/config"
	"notesapi/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared redis client. An unreachable server is
// logged but not fatal; the notes cache degrades to the database.
func NewRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Sugar.Warnf("Redis at %s is unreachable, continuing without cache: %v", cfg.RedisAddr, err)
	} else {
		logger.Sugar.Infof("Connected to redis at %s", cfg.RedisAddr)
	}
	return client
}
