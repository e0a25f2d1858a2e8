package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/handler"
	"github.com/BloggingApp/blog-service/internal/pagecache"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/BloggingApp/blog-service/internal/server"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/BloggingApp/blog-service/internal/storage"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Warnf("failed to load .env, using process environment: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	repos := initRepository(ctx, logger)
	cache := initPageCache(ctx, logger)

	var images storage.ImageStore
	if minioConfig := config.LoadMinioConfig(); minioConfig.Enabled() {
		store, err := storage.NewMinio(ctx, minioConfig)
		if err != nil {
			logger.Sugar().Panicf("failed to connect to minio: %s", err.Error())
		}
		images = store
		logger.Info("Successfully connected to MinIO")
	}

	authConfig := config.LoadAuthConfig()
	if len(authConfig.AccessSecret) == 0 {
		logger.Panic("ACCESS_SECRET is not set")
	}

	services := service.New(logger, repos, images, authConfig)
	handlers := handler.New(logger, services, cache, authConfig)

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(viper.GetString("client.origin")),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func(srv *server.Server, cfg config.ServerConfig) {
		if err := srv.Run(cfg); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}(srv, serverConfig)

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

func initRepository(ctx context.Context, logger *zap.Logger) *repository.Repository {
	if config.StorageDriver() == config.DriverMemory {
		logger.Info("Using in-memory storage")
		return memory.New()
	}

	db, err := postgres.DB(ctx, config.LoadDBConfig())
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Sugar().Panicf("failed to migrate postgres schema: %s", err.Error())
	}

	return postgres.New(db)
}

func initPageCache(ctx context.Context, logger *zap.Logger) pagecache.PageCache {
	cacheConfig := config.LoadCacheConfig()
	if cacheConfig.Driver == config.DriverMemory {
		logger.Info("Using in-memory page cache")
		return pagecache.NewMemory(cacheConfig.Size, cacheConfig.IndexTTL)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.LoadRedisConfig().Addr,
	})
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	return pagecache.NewRedis(redisrepo.New(rdb), cacheConfig.IndexTTL)
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
