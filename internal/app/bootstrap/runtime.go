package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/leadform/internal/config"
	"github.com/wolfman30/leadform/internal/once"
	"github.com/wolfman30/leadform/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildGuard returns the Redis-backed submission guard when Redis is
// available and an in-process guard otherwise.
func BuildGuard(redisClient *redis.Client, cfg *appconfig.Config, logger *logging.Logger) once.Guard {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient == nil {
		logger.Info("submission guard running in memory")
		return once.NewMemoryGuard(cfg.FormTokenTTL)
	}
	return once.NewRedisGuard(redisClient, cfg.FormTokenTTL)
}
