package db

import (
	"time"

	"backend-fleetdesk/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when no address is configured; callers fall back
// to in-process toasts, clipboard and hub fan-out.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DialTimeout: 3 * time.Second,
	})
}
