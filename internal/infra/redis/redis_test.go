package redis

import (
	"context"
	"testing"
	"time"

	"recipe-finder/internal/config"
	"recipe-finder/internal/model"

	"github.com/redis/go-redis/v9"
)

// unreachableClient 指向无人监听的端口，所有命令立即失败
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRecipeKey(t *testing.T) {
	if got := RecipeKey("52772"); got != "recipe:52772" {
		t.Errorf("key = %s", got)
	}
}

func TestRecipeCacheWithoutClient(t *testing.T) {
	c := NewRecipeCache(nil, time.Minute)
	c.SetRecipe(context.Background(), &model.Recipe{ID: "1"})
	if _, ok := c.GetRecipe(context.Background(), "1"); ok {
		t.Error("nil client should always miss")
	}
}

func TestRecipeCacheUnreachableIsMiss(t *testing.T) {
	c := NewRecipeCache(unreachableClient(t), time.Minute)
	ctx := context.Background()

	c.SetRecipe(ctx, &model.Recipe{ID: "1", Name: "Pie"})
	if _, ok := c.GetRecipe(ctx, "1"); ok {
		t.Error("unreachable redis should miss")
	}
}

func TestTokenBlacklistWithoutClient(t *testing.T) {
	b := NewTokenBlacklist(nil)
	ctx := context.Background()

	if err := b.Revoke(ctx, "jti", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err := b.IsRevoked(ctx, "jti")
	if err != nil || revoked {
		t.Errorf("revoked = %v, err = %v", revoked, err)
	}
}

func TestTokenBlacklistUnreachableReturnsError(t *testing.T) {
	b := NewTokenBlacklist(unreachableClient(t))
	ctx := context.Background()

	if err := b.Revoke(ctx, "jti", time.Minute); err == nil {
		t.Error("revoke should fail")
	}
	if _, err := b.IsRevoked(ctx, "jti"); err == nil {
		t.Error("is revoked should fail")
	}
}

func TestInitUnreachableLeavesClientNil(t *testing.T) {
	err := Init(&config.RedisConfig{Host: "127.0.0.1", Port: 1})
	if err == nil {
		t.Fatal("Init should fail without a server")
	}
	if Get() != nil {
		t.Error("client should stay nil after a failed ping")
	}
	if err := Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}

	// 未连接时缓存与黑名单都按未启用处理
	if _, ok := NewRecipeCache(Get(), time.Minute).GetRecipe(context.Background(), "52772"); ok {
		t.Error("cache should miss")
	}
	if revoked, err := NewTokenBlacklist(Get()).IsRevoked(context.Background(), "jti"); revoked || err != nil {
		t.Errorf("IsRevoked = %v, %v", revoked, err)
	}
}
