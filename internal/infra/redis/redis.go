package redis

import (
	"context"
	"fmt"
	"time"

	"recipe-finder/internal/config"
	"recipe-finder/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// Client 菜谱缓存与登出令牌共用的客户端；连接失败时为 nil
var Client *redis.Client

// Init 连接 Redis。失败时 Client 保持 nil，RecipeCache 与 TokenBlacklist 按未启用处理
func Init(cfg *config.RedisConfig) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		Client = nil
		return fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}
	Client = client

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Duration("recipe_cache_ttl", cfg.RecipeCacheDuration()),
	)
	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}
	err := Client.Close()
	Client = nil
	logger.Info("Redis connection closed")
	return err
}

// Get 未连接时返回 nil
func Get() *redis.Client {
	return Client
}
