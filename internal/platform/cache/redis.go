package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Host string
	Port string
	DB   int
}

const maxRetries = 5

var retryDelay = 2 * time.Second

// NewRedisClient connects and pings, retrying while the server comes up.
func NewRedisClient(ctx context.Context, cfg Config, log *zap.Logger) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   cfg.DB,
	})

	if err := waitForPing(ctx, client, addr, log); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// waitForPing pings until the server answers, maxRetries attempts at most.
func waitForPing(ctx context.Context, client redis.Cmdable, addr string, log *zap.Logger) error {
	var err error
	for i := 1; i <= maxRetries; i++ {
		log.Debug("connecting to redis", zap.String("addr", addr), zap.Int("attempt", i), zap.Int("max", maxRetries))

		if err = client.Ping(ctx).Err(); err == nil {
			log.Info("redis connected", zap.String("addr", addr))
			return nil
		}

		if i == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return fmt.Errorf("connect redis %s: %w", addr, err)
}
