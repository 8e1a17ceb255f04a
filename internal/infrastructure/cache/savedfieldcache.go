// Package cache holds the saved-field suggestion list caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/hotline-inc/hotline/internal/domain/savedfield"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

const (
	savedFieldsKey = "hotline:saved_fields"

	// DefaultSavedFieldTTL bounds staleness when another instance changed
	// the list and the invalidation was missed.
	DefaultSavedFieldTTL = 10 * time.Minute
)

// RedisSavedFieldCache stores the grouped list as one JSON value.
type RedisSavedFieldCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisSavedFieldCache(client *redis.Client, ttl time.Duration, log logger.Interface) *RedisSavedFieldCache {
	if ttl <= 0 {
		ttl = DefaultSavedFieldTTL
	}
	return &RedisSavedFieldCache{client: client, ttl: ttl, logger: log}
}

// Get returns the cached list. Redis failures count as a miss.
func (c *RedisSavedFieldCache) Get(ctx context.Context) (*savedfield.Grouped, bool) {
	data, err := c.client.Get(ctx, savedFieldsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("failed to read saved fields from redis", "error", err)
		}
		return nil, false
	}

	var grouped savedfield.Grouped
	if err := json.Unmarshal(data, &grouped); err != nil {
		c.logger.Warnw("discarding corrupt saved field cache entry", "error", err)
		return nil, false
	}
	return &grouped, true
}

func (c *RedisSavedFieldCache) Set(ctx context.Context, grouped *savedfield.Grouped) error {
	data, err := json.Marshal(grouped)
	if err != nil {
		return fmt.Errorf("failed to marshal saved fields: %w", err)
	}
	if err := c.client.Set(ctx, savedFieldsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache saved fields: %w", err)
	}
	return nil
}

func (c *RedisSavedFieldCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, savedFieldsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate saved fields: %w", err)
	}
	return nil
}

// LocalSavedFieldCache keeps the list in process memory. Used when Redis is
// disabled.
type LocalSavedFieldCache struct {
	lru *expirable.LRU[string, *savedfield.Grouped]
}

func NewLocalSavedFieldCache(ttl time.Duration) *LocalSavedFieldCache {
	if ttl <= 0 {
		ttl = DefaultSavedFieldTTL
	}
	return &LocalSavedFieldCache{
		lru: expirable.NewLRU[string, *savedfield.Grouped](1, nil, ttl),
	}
}

func (c *LocalSavedFieldCache) Get(_ context.Context) (*savedfield.Grouped, bool) {
	grouped, ok := c.lru.Get(savedFieldsKey)
	if !ok {
		return nil, false
	}
	return cloneGrouped(grouped), true
}

func (c *LocalSavedFieldCache) Set(_ context.Context, grouped *savedfield.Grouped) error {
	c.lru.Add(savedFieldsKey, cloneGrouped(grouped))
	return nil
}

func (c *LocalSavedFieldCache) Invalidate(_ context.Context) error {
	c.lru.Remove(savedFieldsKey)
	return nil
}

func cloneGrouped(g *savedfield.Grouped) *savedfield.Grouped {
	return &savedfield.Grouped{
		Callers: append([]string{}, g.Callers...),
		Reasons: append([]string{}, g.Reasons...),
		Tags:    append([]string{}, g.Tags...),
	}
}
