// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config reads the strtreed service configuration from the
// environment, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/gogama/strtree"
	"github.com/joho/godotenv"
)

// Config is the strtreed service configuration.
type Config struct {
	// Addr is the HTTP listen address (STRTREE_ADDR).
	Addr string
	// Dataset is the path of a GeoJSON FeatureCollection file to
	// index (STRTREE_DATASET). Ignored if PGQuery is set.
	Dataset string
	// PGQuery is a SQL query returning one WKB geometry column
	// (STRTREE_PG_QUERY). When set, geometries are loaded from
	// PostgreSQL instead of Dataset.
	PGQuery string
	// PostgresDSN is built from the PG_* variables.
	PostgresDSN    string
	PGMaxOpenConns int
	// RedisAddr is host:port of the result cache. Empty disables
	// caching (REDIS_HOST unset).
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	NodeCapacity int
	Parallelism  int
}

// Load loads each existing file in filenames into the environment,
// without overriding variables that are already set, and then reads
// the configuration with FromEnv(os.LookupEnv). Missing files are
// skipped.
func Load(filenames ...string) (Config, error) {
	for _, f := range filenames {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv reads the configuration through lookup, applying defaults
// for unset variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}
	c := Config{
		Addr:           e.str("STRTREE_ADDR", ":8080"),
		Dataset:        e.str("STRTREE_DATASET", ""),
		PGQuery:        e.str("STRTREE_PG_QUERY", ""),
		PostgresDSN:    postgresDSN(&e),
		PGMaxOpenConns: e.int("PG_MAX_OPEN_CONNS", 10),
		RedisPassword:  e.str("REDIS_PASS", ""),
		RedisDB:        e.int("REDIS_DB", 0),
		CacheTTL:       time.Duration(e.int("STRTREE_CACHE_TTL_S", 60)) * time.Second,
		NodeCapacity:   e.int("STRTREE_NODE_CAPACITY", strtree.DefaultNodeCapacity),
		Parallelism:    e.int("STRTREE_PARALLELISM", runtime.GOMAXPROCS(0)),
	}
	if host := e.str("REDIS_HOST", ""); host != "" {
		c.RedisAddr = host + ":" + e.str("REDIS_PORT", "6379")
	}
	if e.err != nil {
		return Config{}, e.err
	}
	if c.Dataset == "" && c.PGQuery == "" {
		return Config{}, errors.New("config: one of STRTREE_DATASET or STRTREE_PG_QUERY must be set")
	}
	if c.RedisDB < 0 {
		return Config{}, fmt.Errorf("config: REDIS_DB must not be negative, got %d", c.RedisDB)
	}
	if c.CacheTTL <= 0 {
		return Config{}, fmt.Errorf("config: STRTREE_CACHE_TTL_S must be positive, got %d", c.CacheTTL/time.Second)
	}
	return c, nil
}

func postgresDSN(e *env) string {
	dsn := "postgres://" + e.str("PG_USER", "postgres")
	if pass := e.str("PG_PASSWORD", ""); pass != "" {
		dsn += ":" + pass
	}
	dsn += "@" + e.str("PG_HOST", "localhost") + ":" + e.str("PG_PORT", "5432") +
		"/" + e.str("PG_DB", "strtree") + "?sslmode=" + e.str("PG_SSLMODE", "disable")
	return dsn
}

// env reads typed values, keeping the first parse error.
type env struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("config: invalid integer %s=%q: %w", key, v, err)
	}
	return n
}
