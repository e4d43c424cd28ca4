package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"orderapi/internal/config"
	"orderapi/internal/convert"
)

const keyPrefix = "orderapi:conversion:"

// redisCache implements ConversionCache on a Redis backend.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis using the configured URL and verifies the
// connection with a ping.
func NewRedis(cfg config.RedisConfig) (ConversionCache, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSec) * time.Second,
	}, nil
}

func (c *redisCache) Get(ctx context.Context, contentHash string) (*convert.Result, error) {
	raw, err := c.client.Get(ctx, keyPrefix+contentHash).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var res convert.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	return &res, nil
}

func (c *redisCache) Set(ctx context.Context, contentHash string, res *convert.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+contentHash, raw, c.ttl).Err()
}
