package repository

import (
	"context"
	"fmt"
	"time"

	"fridge-service/internal/domain"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisOptions holds the connection settings for RedisGateway
type RedisOptions struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisGateway stores the collection as one redis string value
type RedisGateway struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisGateway connects to redis and verifies the connection
func NewRedisGateway(opts RedisOptions, key string, logger *zap.Logger) (*RedisGateway, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
		// Connection pool settings
		PoolSize:     4,
		MinIdleConns: 1,
		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		// Retry settings
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis gateway initialized",
		zap.String("host", opts.Host),
		zap.String("port", opts.Port),
		zap.Int("db", opts.DB),
	)

	return NewRedisGatewayWithClient(rdb, key, logger), nil
}

// NewRedisGatewayWithClient wraps an existing client
func NewRedisGatewayWithClient(client *redis.Client, key string, logger *zap.Logger) *RedisGateway {
	return &RedisGateway{
		client: client,
		key:    key,
		logger: logger,
	}
}

func (g *RedisGateway) Load(ctx context.Context) (domain.Collection, error) {
	data, err := g.client.Get(ctx, g.key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		g.logger.Warn("Redis Get error", zap.String("key", g.key), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return DecodeCollection(data)
}

func (g *RedisGateway) Save(ctx context.Context, items domain.Collection) error {
	data, err := EncodeCollection(items)
	if err != nil {
		return err
	}
	if err := g.client.Set(ctx, g.key, data, 0).Err(); err != nil {
		g.logger.Warn("Redis Set error", zap.String("key", g.key), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

// Client exposes the underlying connection so other components can share it
func (g *RedisGateway) Client() *redis.Client {
	return g.client
}

// Close closes the redis client
func (g *RedisGateway) Close() error {
	return g.client.Close()
}
