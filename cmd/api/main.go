package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-finder/internal/api/handler"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/api/router"
	"recipe-finder/internal/config"
	"recipe-finder/internal/infra/database"
	infraES "recipe-finder/internal/infra/elasticsearch"
	infraKafka "recipe-finder/internal/infra/kafka"
	"recipe-finder/internal/infra/mealdb"
	infraMinio "recipe-finder/internal/infra/minio"
	infraRedis "recipe-finder/internal/infra/redis"
	"recipe-finder/internal/repository"
	"recipe-finder/internal/service"
	"recipe-finder/pkg/logger"

	_ "recipe-finder/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Recipe Finder API
// @version 1.0
// @description 菜谱搜索、收藏与评分服务
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// .env 可选，存在时先注入环境变量再由 viper 覆盖配置
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database, cfg.App.Mode == gin.DebugMode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(database.Get()); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// Redis 不可用时缓存未命中、登出令牌不拉黑
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis init failed, cache and token blacklist disabled", zap.Error(err))
	} else {
		defer infraRedis.Close()
	}

	// 头像存储可选，失败时上传接口返回 503
	var avatars service.AvatarStorage
	if err := infraMinio.Init(&cfg.MinIO); err != nil {
		logger.Warn("MinIO init failed, avatar upload disabled", zap.Error(err))
	} else {
		avatars = infraMinio.NewAvatarStore(infraMinio.Get(), &cfg.MinIO)
	}

	// 事件发布失败不影响用户操作
	var publisher service.EventPublisher
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Warn("Kafka producer init failed, recipe events disabled", zap.Error(err))
	} else {
		defer infraKafka.CloseProducer()
		publisher = infraKafka.NewPublisher(infraKafka.Producer(), cfg.Kafka.Topics["recipe_events"])
	}

	// Elasticsearch 可选，失败则热门搜索降级到 DB
	var index service.RecipeIndex
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		recipeIndex := infraES.NewRecipeIndex(infraES.Get(), cfg.Elasticsearch.RecipesIndex())
		if err := recipeIndex.InitIndexes(); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		index = recipeIndex
	}

	catalog, err := mealdb.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.TimeoutDuration())
	if err != nil {
		logger.Fatal("Failed to init recipe catalog", zap.Error(err))
	}

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// Repository -> Service -> Handler
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	blacklist := infraRedis.NewTokenBlacklist(infraRedis.Get())
	recipeCache := infraRedis.NewRecipeCache(infraRedis.Get(), cfg.Redis.RecipeCacheDuration())

	authService := service.NewAuthService(userRepo, blacklist)
	userService := service.NewUserService(userRepo, favoriteRepo, commentRepo, avatars)
	favoriteService := service.NewFavoriteService(favoriteRepo, publisher)
	commentService := service.NewCommentService(commentRepo, publisher)
	recipeService := service.NewRecipeService(catalog, recipeCache, favoriteService, commentService, cfg.Catalog.MaxConcurrency)
	searchService := service.NewSearchService(favoriteRepo, commentRepo, recipeService, index)

	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService, commentService),
		Recipe:   handler.NewRecipeHandler(recipeService),
		Comment:  handler.NewCommentHandler(commentService, authService),
		Favorite: handler.NewFavoriteHandler(favoriteService, recipeService),
		Search:   handler.NewSearchHandler(searchService),
	}

	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, handlers, blacklist)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
		zap.String("catalog", cfg.Catalog.BaseURL),
	)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	logger.Info("Server listening", zap.String("addr", addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"mode":    cfg.App.Mode,
		"docs":    "/swagger/index.html",
	})
}
