// Package statspub ships stats snapshots to Redis pub/sub for external
// dashboards. It never feeds anything back into the relay.
package statspub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkeye/djrelay/internal/config"
	"github.com/dkeye/djrelay/internal/core"
	"github.com/redis/go-redis/v9"
)

const EventStats = "stats"

type Event struct {
	Type      string             `json:"type"`
	Stats     core.StatsSnapshot `json:"stats"`
	Timestamp time.Time          `json:"timestamp"`
}

type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(ctx context.Context, cfg config.RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisPublisher{client: client, channel: cfg.Channel}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, snap core.StatsSnapshot) error {
	data, err := encode(snap, time.Now())
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

func encode(snap core.StatsSnapshot, at time.Time) ([]byte, error) {
	data, err := json.Marshal(Event{Type: EventStats, Stats: snap, Timestamp: at})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats event: %w", err)
	}
	return data, nil
}
