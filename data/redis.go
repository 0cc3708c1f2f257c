package data

import (
	"context"
	"fmt"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"github.com/redis/go-redis/v9"
)

// RedisName is the component name of the redis client
const RedisName = "redis"

// Redis is a component owning a *redis.Client
type Redis struct {
	types.OptionalImpl

	cfg    *config.Redis
	client *redis.Client
}

// NewRedis creates the redis component
func NewRedis(cfg *config.Redis) *Redis {
	return &Redis{cfg: cfg}
}

func (r *Redis) Name() string           { return RedisName }
func (r *Redis) Version() string        { return "1.0.0" }
func (r *Redis) Dependencies() []string { return nil }

func (r *Redis) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        RedisName,
		Version:     r.Version(),
		Description: "Redis client",
		Type:        "data",
		Group:       "data",
	}
}

// Init creates the client and verifies it with a ping
func (r *Redis) Init(_ *config.Config, _ types.ContainerInterface) error {
	if r.cfg.Addr == "" {
		return fmt.Errorf("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         r.cfg.Addr,
		Username:     r.cfg.Username,
		Password:     r.cfg.Password,
		DB:           r.cfg.Db,
		ReadTimeout:  r.cfg.ReadTimeout,
		WriteTimeout: r.cfg.WriteTimeout,
		DialTimeout:  r.cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis: failed to ping server: %w", err)
	}

	r.client = client
	logger.Infof(ctx, "connected to redis at %s", r.cfg.Addr)
	return nil
}

// Health pings the server
func (r *Redis) Health(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis: not connected")
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

// Cleanup closes the client
func (r *Redis) Cleanup() error {
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	if err != nil {
		return fmt.Errorf("redis: failed to close connection: %w", err)
	}
	return nil
}

// Client returns the redis client, nil before Init
func (r *Redis) Client() *redis.Client {
	return r.client
}
