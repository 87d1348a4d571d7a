package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fridge-service/internal/config"
	"fridge-service/internal/events"
	"fridge-service/internal/handlers"
	"fridge-service/internal/inventory"
	"fridge-service/internal/repository"
	"fridge-service/pkg/logger"
	"fridge-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "fridge-service/docs" // Import docs for Swagger
)

// @title           Fridge Service API
// @version         1.0
// @description     Household fridge inventory: items with freshness tiers, a trash, and quantity adjustments. All mutating endpoints honour X-Request-ID for idempotent replay.

// @host      localhost:8080
// @BasePath  /api/v1

// @schemes   http https
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Fridge Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.String("storage_driver", cfg.StorageDriver),
	)

	gateway, redisClient := buildGateway(cfg, appLogger)
	if closer, ok := gateway.(io.Closer); ok {
		defer closer.Close()
	}

	publisher := buildPublisher(cfg, appLogger)
	if closer, ok := publisher.(io.Closer); ok {
		defer closer.Close()
	}

	store := inventory.NewStore(gateway, appLogger,
		inventory.WithPersistRetries(cfg.PersistRetries, 50*time.Millisecond),
		inventory.WithHooks(
			inventory.LogHook(appLogger),
			inventory.PublishHook(publisher, appLogger),
		),
	)
	items, err := store.Initialize(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to load fridge state", zap.Error(err))
	}
	appLogger.Info("✅ Fridge loaded", zap.Int("items", len(items)))

	requestIDStore := buildRequestIDStore(redisClient)
	if closer, ok := requestIDStore.(io.Closer); ok {
		defer closer.Close()
	}

	router := newRouter(cfg, appLogger, store, requestIDStore)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting fridge service",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

func newRouter(cfg *config.Config, appLogger *zap.Logger, store handlers.FridgeStore, requestIDStore middleware.RequestIDStore) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ttl := time.Duration(cfg.IdempotencyTTLSeconds) * time.Second

	router := gin.New()

	// CORS first so preflight requests short-circuit
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(middleware.IdempotencyMiddleware(requestIDStore, appLogger))
	router.Use(middleware.ErrorHandler(appLogger))
	router.Use(middleware.StoreResponseMiddleware(requestIDStore, appLogger, ttl))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.NewFridgeHandler(appLogger, store).RegisterRoutes(router.Group("/api/v1"))
	return router
}

// buildGateway opens the configured storage. Any failure falls back to the
// in-memory gateway so the fridge stays usable; the redis client is returned
// when redis is in use so it can be shared.
func buildGateway(cfg *config.Config, appLogger *zap.Logger) (repository.Gateway, *redis.Client) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		gateway, err := repository.NewSQLiteGateway(cfg.SQLitePath, cfg.StorageKey, appLogger)
		if err == nil {
			return gateway, nil
		}
		appLogger.Warn("Failed to open sqlite storage, using in-memory fallback",
			zap.String("path", cfg.SQLitePath),
			zap.Error(err),
		)
	case config.StorageRedis:
		gateway, err := repository.NewRedisGateway(repository.RedisOptions{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.StorageKey, appLogger)
		if err == nil {
			return gateway, gateway.Client()
		}
		appLogger.Warn("Failed to connect to redis, using in-memory fallback", zap.Error(err))
	case config.StorageMemory:
	default:
		appLogger.Warn("Unknown storage driver, using in-memory storage", zap.String("driver", cfg.StorageDriver))
	}
	return repository.NewInMemoryGateway(), nil
}

func buildPublisher(cfg *config.Config, appLogger *zap.Logger) events.EventPublisher {
	if !cfg.UseKafka {
		return events.NewEventPublisher(appLogger)
	}

	appLogger.Info("📡 Kafka Configuration",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic_items", cfg.KafkaTopicItems),
		zap.String("topic_stock", cfg.KafkaTopicStock),
		zap.String("client_id", cfg.KafkaClientID),
		zap.String("acks", cfg.KafkaAcks),
		zap.Int("retries", cfg.KafkaRetries),
	)
	publisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
		return events.NewEventPublisher(appLogger)
	}
	return publisher
}

func buildRequestIDStore(client *redis.Client) middleware.RequestIDStore {
	if client != nil {
		return middleware.NewRedisRequestIDStore(client)
	}
	return middleware.NewInMemoryRequestIDStore(time.Minute)
}
