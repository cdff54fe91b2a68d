package cache_utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 3 * time.Second
	DefaultQueueTimeout = 5 * time.Second
	DefaultCacheTTL     = 5 * time.Minute
)

// CacheUtil is a typed wrapper over the valkey client. Values are stored
// JSON-encoded under prefix+key with a TTL (DefaultCacheTTL unless set
// explicitly via SetWithTTL).
type CacheUtil[T any] struct {
	client  valkey.Client
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

func NewCacheUtil[T any](client valkey.Client, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		client:  client,
		prefix:  prefix,
		ttl:     DefaultCacheTTL,
		timeout: DefaultCacheTimeout,
	}
}

func (c *CacheUtil[T]) Get(key string) *T {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	result := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build())
	if result.Error() != nil {
		return nil
	}

	raw, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}

	return &value
}

func (c *CacheUtil[T]) Set(key string, value *T) {
	c.SetWithTTL(key, value, c.ttl)
}

func (c *CacheUtil[T]) SetWithTTL(key string, value *T, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := c.client.B().
		Set().
		Key(c.prefix + key).
		Value(string(raw)).
		ExSeconds(int64(ttl.Seconds())).
		Build()

	c.client.Do(ctx, cmd)
}

func (c *CacheUtil[T]) Invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	c.client.Do(ctx, c.client.B().Del().Key(c.prefix+key).Build())
}
