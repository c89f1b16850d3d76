package utils

import (
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"consultly/config"
)

var (
	scheduleCacheClient *redis.Client
	scheduleCacheOnce   sync.Once
)

// GetScheduleCacheClient returns the shared Redis client used for rendered
// schedule projections. Lazy so tests never dial Redis.
func GetScheduleCacheClient() *redis.Client {
	scheduleCacheOnce.Do(func() {
		scheduleCacheClient = redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisCacheDB,
		})
		GetLogger().Info("schedule cache client initialized",
			zap.String("addr", config.AppConfig.RedisAddr),
			zap.Int("db", config.AppConfig.RedisCacheDB))
	})
	return scheduleCacheClient
}
