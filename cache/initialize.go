package cache

import (
	"fmt"

	"blog-api/config"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache builds the read cache for list and show responses.
func InitializeCache(cfg config.CacheConfig) (cache.Cache, error) {
	c, err := cache.New(cache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize %s cache: %w", cfg.Type, err)
	}
	logger.Info("Cache initialized", zap.String("type", cfg.Type))
	return c, nil
}
