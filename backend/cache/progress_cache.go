package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ProgressCache keeps each user's overall curriculum progress percentage.
// Keys: senya:user:{id}:overall_progress -> int
type ProgressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis and verifies the connection.
func New(cfg Config) (*ProgressCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewWithClient(client, cfg.TTL), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *ProgressCache {
	return &ProgressCache{client: client, ttl: ttl}
}

func (c *ProgressCache) Close() error {
	return c.client.Close()
}

const overallProgressPattern = "senya:user:*:overall_progress"

func overallProgressKey(userID uint) string {
	return fmt.Sprintf("senya:user:%d:overall_progress", userID)
}

// Get returns the cached percentage and whether it was present.
func (c *ProgressCache) Get(ctx context.Context, userID uint) (int, bool, error) {
	raw, err := c.client.Get(ctx, overallProgressKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get overall progress: %w", err)
	}
	pct, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt overall progress %q: %w", raw, err)
	}
	return pct, true, nil
}

func (c *ProgressCache) Set(ctx context.Context, userID uint, pct int) error {
	if err := c.client.Set(ctx, overallProgressKey(userID), pct, c.ttl).Err(); err != nil {
		return fmt.Errorf("set overall progress: %w", err)
	}
	return nil
}

func (c *ProgressCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, overallProgressKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate overall progress: %w", err)
	}
	return nil
}

// InvalidateAll drops every user's cached percentage. Curriculum edits change
// the denominator for all users at once.
func (c *ProgressCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, overallProgressPattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan overall progress: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate all overall progress: %w", err)
	}
	return nil
}
