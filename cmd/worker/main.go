package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recipe-finder/internal/config"
	"recipe-finder/internal/infra/database"
	infraES "recipe-finder/internal/infra/elasticsearch"
	infraKafka "recipe-finder/internal/infra/kafka"
	"recipe-finder/internal/infra/mealdb"
	infraRedis "recipe-finder/internal/infra/redis"
	"recipe-finder/internal/repository"
	"recipe-finder/internal/service"
	"recipe-finder/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// 菜谱统计索引 worker：消费菜谱事件，刷新 Elasticsearch 中的收藏与评分统计
func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database, false); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	recipeIndex := infraES.NewRecipeIndex(infraES.Get(), cfg.Elasticsearch.RecipesIndex())
	if err := recipeIndex.InitIndexes(); err != nil {
		logger.Fatal("Failed to init recipes index", zap.Error(err))
	}

	// 缓存可选，减少对目录的重复请求
	var cache service.RecipeCache
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, recipe cache disabled", zap.Error(err))
	} else {
		defer infraRedis.Close()
		cache = infraRedis.NewRecipeCache(infraRedis.Get(), cfg.Redis.RecipeCacheDuration())
	}

	catalog, err := mealdb.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.TimeoutDuration())
	if err != nil {
		logger.Fatal("Failed to init recipe catalog", zap.Error(err))
	}

	db := database.Get()
	favoriteRepo := repository.NewFavoriteRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	favoriteService := service.NewFavoriteService(favoriteRepo, nil)
	commentService := service.NewCommentService(commentRepo, nil)
	recipeService := service.NewRecipeService(catalog, cache, favoriteService, commentService, cfg.Catalog.MaxConcurrency)
	searchService := service.NewSearchService(favoriteRepo, commentRepo, recipeService, recipeIndex)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	success, failed, err := searchService.SyncAllRecipes(ctx, 100)
	if err != nil {
		logger.Error("Initial recipe sync failed", zap.Error(err))
	} else {
		logger.Info("Initial recipe sync completed", zap.Int("success", success), zap.Int("failed", failed))
	}

	topic := cfg.Kafka.Topics["recipe_events"]
	logger.Info("Recipe index worker started",
		zap.String("topic", topic),
		zap.String("group", cfg.Kafka.GroupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartRecipeEventConsumer(ctx, cfg.Kafka.Brokers, topic, cfg.Kafka.GroupID, searchService.HandleRecipeEvent)
}
