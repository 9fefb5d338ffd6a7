package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qaforum/api/internal/config"
	"qaforum/api/internal/models"
)

const statsKey = "qaforum:stats"

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// StatsCache stores the admin stats snapshot as JSON under a single key.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) GetStats(ctx context.Context) (models.Stats, bool, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Stats{}, false, nil
	}
	if err != nil {
		return models.Stats{}, false, fmt.Errorf("redis get stats: %w", err)
	}

	stats, err := decodeStats(raw)
	if err != nil {
		return models.Stats{}, false, err
	}
	return stats, true, nil
}

func (c *StatsCache) SetStats(ctx context.Context, stats models.Stats) error {
	raw, err := encodeStats(stats)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set stats: %w", err)
	}
	return nil
}

func encodeStats(stats models.Stats) ([]byte, error) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	return raw, nil
}

func decodeStats(raw []byte) (models.Stats, error) {
	var stats models.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return models.Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}
