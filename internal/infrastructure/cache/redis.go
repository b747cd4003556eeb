// Package cache holds the Redis read-through cache of the event catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

var _ output.CatalogCache = (*RedisCatalogCache)(nil)

type RedisCatalogCache struct {
	rdb *redis.Client

	prefix string
	ttl    time.Duration
}

type Option func(*RedisCatalogCache)

func WithPrefix(prefix string) Option {
	return func(c *RedisCatalogCache) {
		c.prefix = strings.Trim(prefix, ":")
	}
}

// WithTTL sets the expiry of cached entries. Zero keeps them until evicted.
func WithTTL(d time.Duration) Option {
	return func(c *RedisCatalogCache) { c.ttl = d }
}

func NewRedisCatalogCache(rdb *redis.Client, opts ...Option) *RedisCatalogCache {
	c := &RedisCatalogCache{
		rdb:    rdb,
		prefix: "eventreg:catalog",
		ttl:    5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient parses a redis:// URL and checks the server answers.
func NewClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (c *RedisCatalogCache) eventKey(id int64) string {
	return c.prefix + ":event:" + strconv.FormatInt(id, 10)
}

func (c *RedisCatalogCache) filterOptionsKey() string {
	return c.prefix + ":filter-options"
}

func (c *RedisCatalogCache) GetEvent(ctx context.Context, id int64) (*entities.Event, error) {
	var event entities.Event
	ok, err := c.get(ctx, c.eventKey(id), &event)
	if err != nil || !ok {
		return nil, err
	}
	return &event, nil
}

func (c *RedisCatalogCache) SetEvent(ctx context.Context, event *entities.Event) error {
	if event == nil {
		return nil
	}
	return c.set(ctx, c.eventKey(event.ID), event)
}

func (c *RedisCatalogCache) GetFilterOptions(ctx context.Context) (*entities.FilterOptions, error) {
	var options entities.FilterOptions
	ok, err := c.get(ctx, c.filterOptionsKey(), &options)
	if err != nil || !ok {
		return nil, err
	}
	return &options, nil
}

func (c *RedisCatalogCache) SetFilterOptions(ctx context.Context, options *entities.FilterOptions) error {
	if options == nil {
		return nil
	}
	return c.set(ctx, c.filterOptionsKey(), options)
}

// Invalidate drops every cached catalog entry. Used by admin tooling after
// events are edited out of band.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan catalog keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *RedisCatalogCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// Corrupt entry: treat as a miss so the caller reloads it.
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *RedisCatalogCache) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
