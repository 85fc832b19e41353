package redis

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a small cache wrapper around go-redis. A missing key reads as
// an empty string, not an error.
type Client struct {
	client *redis.Client
}

// MustNewClient creates a new Redis client.
func MustNewClient() *Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("POS_REDIS_ADDR"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		panic(err)
	}

	return &Client{client: client}
}

// Close closes the connection for graceful shutdown.
func (c *Client) Close() error {
	return c.client.Close()
}

// Set stores a value with a TTL.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Get fetches a value. A missing key returns "" with no error.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return val, nil
}

// Delete removes keys, ignoring ones that do not exist.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}
