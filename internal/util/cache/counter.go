package cache_utils

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Counter is an atomic integer counter in valkey, used for per-client
// usage accounting. Keys expire so stale buckets clean themselves up.
type Counter struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
}

func NewCounter(client valkey.Client, prefix string) *Counter {
	return &Counter{
		client:  client,
		prefix:  prefix,
		timeout: DefaultCacheTimeout,
	}
}

// IncrBy atomically adds delta to the counter and returns the new value.
// The TTL is applied when the key is first created.
func (c *Counter) IncrBy(key string, delta int64, ttl time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := c.client.B().Incrby().Key(c.prefix + key).Increment(delta).Build()
	value, err := c.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, err
	}

	if value == delta {
		expireCmd := c.client.B().
			Expire().
			Key(c.prefix + key).
			Seconds(int64(ttl.Seconds())).
			Build()
		if err := c.client.Do(ctx, expireCmd).Error(); err != nil {
			return value, err
		}
	}

	return value, nil
}

func (c *Counter) DecrBy(key string, delta int64) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := c.client.B().Decrby().Key(c.prefix + key).Decrement(delta).Build()
	return c.client.Do(ctx, cmd).AsInt64()
}

func (c *Counter) Get(key string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	result := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}

	return result.AsInt64()
}
