package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/hotelreports/config"
	"github.com/Domenick1991/hotelreports/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cache:"

type RedisCache struct {
	client   *redis.Client
	pagesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, pagesTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		pagesTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, pagesTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, pagesTTL: pagesTTL}
}

// Client exposes the underlying connection for collaborators sharing it,
// such as the rate limiter store.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetBookingsPage returns (nil, nil) on a miss.
func (c *RedisCache) GetBookingsPage(ctx context.Context, key string) (*domain.BookingsPage, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var page domain.BookingsPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetBookingsPage(ctx context.Context, key string, page *domain.BookingsPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, payload, c.pagesTTL).Err()
}
