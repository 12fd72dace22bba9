// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cache is the optional Redis cache of encoded query
// responses. A nil *Cache is valid and caches nothing.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/gogama/strtree/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "strtree:"

// Open returns a client for the Redis server at addr, or nil if addr is
// empty.
func Open(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// Cache stores response bodies under keys derived from requests.
type Cache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// New returns a Cache over rdb whose entries expire after ttl, or nil if
// rdb is nil.
func New(rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

// Key derives a cache key from a namespace and the parts identifying a
// request. Parts are hashed so keys stay short for large geometries.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return keyPrefix + namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value for key. Errors other than a miss are
// logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMissesTotal.Inc()
		return nil, false
	} else if err != nil {
		metrics.CacheErrorsTotal.Inc()
		c.logger.Warn("cache_get_error", "key", key, "err", err)
		return nil, false
	}
	metrics.CacheHitsTotal.Inc()
	return b, true
}

// Set stores value under key. Errors are logged and otherwise ignored.
func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		metrics.CacheErrorsTotal.Inc()
		c.logger.Warn("cache_set_error", "key", key, "err", err)
	}
}
