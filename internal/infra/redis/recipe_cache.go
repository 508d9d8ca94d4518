package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"recipe-finder/internal/model"
	"recipe-finder/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const recipeKeyPrefix = "recipe:"

// RecipeKey 菜谱缓存 key
func RecipeKey(id string) string {
	return recipeKeyPrefix + id
}

// RecipeCache 按 ID 缓存目录菜谱，client 为 nil 时所有读取都未命中
type RecipeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecipeCache(client *redis.Client, ttl time.Duration) *RecipeCache {
	return &RecipeCache{client: client, ttl: ttl}
}

// GetRecipe 读取缓存，读取或解析失败视为未命中
func (c *RecipeCache) GetRecipe(ctx context.Context, id string) (*model.Recipe, bool) {
	if c == nil || c.client == nil || id == "" {
		return nil, false
	}

	raw, err := c.client.Get(ctx, RecipeKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Read recipe cache failed", zap.String("meal_id", id), zap.Error(err))
		}
		return nil, false
	}

	var recipe model.Recipe
	if err := json.Unmarshal(raw, &recipe); err != nil {
		logger.Warn("Decode cached recipe failed", zap.String("meal_id", id), zap.Error(err))
		return nil, false
	}
	return &recipe, true
}

// SetRecipe 写入缓存，失败只记录日志
func (c *RecipeCache) SetRecipe(ctx context.Context, recipe *model.Recipe) {
	if c == nil || c.client == nil || recipe == nil || recipe.ID == "" {
		return
	}

	raw, err := json.Marshal(recipe)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, RecipeKey(recipe.ID), raw, c.ttl).Err(); err != nil {
		logger.Warn("Write recipe cache failed", zap.String("meal_id", recipe.ID), zap.Error(err))
	}
}
