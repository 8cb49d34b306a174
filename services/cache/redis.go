// Package cachesvc keeps short-lived data in Redis: the content cache & the processed webhook events.
package cachesvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/billing"
	"github.com/trezcool/dailysutra/core/content"
)

const (
	keyPrefix   = "dailysutra:"
	eventPrefix = keyPrefix + "stripe-event:"
)

// RedisClient is the subset of go-redis client methods used here.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// NewRedisClient connects to the configured Redis & checks the connection.
func NewRedisClient(ctx context.Context, conf *core.Config) (RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

// Cache stores JSON values in Redis.
type Cache struct {
	client RedisClient
	ttl    time.Duration
}

var _ content.Cache = (*Cache)(nil)

func NewCache(client RedisClient, conf *core.Config) *Cache {
	return &Cache{client: client, ttl: conf.Redis.CacheTTL}
}

func (c *Cache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, errors.Wrap(err, "getting cached value")
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return false, errors.Wrap(err, "decoding cached value")
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, val interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return errors.Wrap(err, "encoding cached value")
	}
	return errors.Wrap(c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(), "setting cached value")
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, k := range keys {
		prefixed = append(prefixed, keyPrefix+k)
	}
	return errors.Wrap(c.client.Del(ctx, prefixed...).Err(), "deleting cached values")
}

// EventLog remembers the handled webhook events for a limited time.
type EventLog struct {
	client RedisClient
	ttl    time.Duration
}

var _ billing.EventLog = (*EventLog)(nil)

func NewEventLog(client RedisClient, conf *core.Config) *EventLog {
	return &EventLog{client: client, ttl: conf.Redis.EventTTL}
}

func (l *EventLog) Claim(ctx context.Context, eventID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, eventPrefix+eventID, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	return ok, errors.Wrap(err, "claiming event")
}

func (l *EventLog) Release(ctx context.Context, eventID string) error {
	return errors.Wrap(l.client.Del(ctx, eventPrefix+eventID).Err(), "releasing event")
}
