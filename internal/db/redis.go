package db

import (
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/dealer-voicebot/internal/config"
)

// NewRedis returns a redis client for the retrieval cache, or nil when no
// REDIS_ADDR is configured. Callers treat nil as "cache disabled".
func NewRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
}
