// Package cache keeps books keyed by ISBN in Redis so exact ISBN lookups skip
// the database. Writes that change a book invalidate it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/entities"
)

const keyPrefix = "bookstore:book:isbn:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache implements services.BookCache on top of Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache connects to Redis and verifies the connection with a PING.
func NewRedisCache(ctx context.Context, opts Options, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}, nil
}

func bookKey(isbn string) string {
	return keyPrefix + isbn
}

func (c *RedisCache) GetBook(ctx context.Context, isbn string) (*entities.Book, bool) {
	val, err := c.client.Get(ctx, bookKey(isbn)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("cache get failed", zap.String("isbn", isbn), zap.Error(err))
		return nil, false
	}

	book, err := decodeBook(val)
	if err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("isbn", isbn), zap.Error(err))
		c.InvalidateBook(ctx, isbn)
		return nil, false
	}
	return book, true
}

func (c *RedisCache) SetBook(ctx context.Context, book *entities.Book) {
	val, err := json.Marshal(cachedBook(*book))
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("isbn", book.ISBN), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, bookKey(book.ISBN), val, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("isbn", book.ISBN), zap.Error(err))
	}
}

func (c *RedisCache) InvalidateBook(ctx context.Context, isbn string) {
	if err := c.client.Del(ctx, bookKey(isbn)).Err(); err != nil {
		c.logger.Warn("cache delete failed", zap.String("isbn", isbn), zap.Error(err))
	}
}

// InvalidateAll drops every cached book. Keys are found with SCAN so large
// caches do not block Redis.
func (c *RedisCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache flush failed", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
