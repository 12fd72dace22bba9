// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command strtreed loads a geometry dataset, builds an STR index over
// it and serves queries against the index over HTTP.
//
// Configuration is read from the environment and from a .env file in
// the working directory. See package internal/config for the
// variables.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogama/strtree"
	"github.com/gogama/strtree/internal/api"
	"github.com/gogama/strtree/internal/cache"
	"github.com/gogama/strtree/internal/config"
	"github.com/gogama/strtree/internal/dataset"
	"github.com/gogama/strtree/internal/logger"
	"github.com/gogama/strtree/internal/metrics"
	"github.com/gogama/strtree/planar"
	"github.com/paulmach/orb"
)

func main() {
	cfg, err := config.Load(".env")
	l := logger.Setup()
	if err != nil {
		l.Error("config_error", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geoms, err := load(ctx, cfg)
	if err != nil {
		l.Error("dataset_error", "err", err)
		os.Exit(1)
	}
	l.Info("dataset_loaded", "geometries", len(geoms))

	start := time.Now()
	ix, err := strtree.New[orb.Geometry](geoms, planar.Engine{},
		strtree.NodeCapacity(cfg.NodeCapacity),
		strtree.Parallelism(cfg.Parallelism),
		strtree.Logger(l),
	)
	if err != nil {
		l.Error("index_build_error", "err", err)
		os.Exit(1)
	}
	metrics.BuildDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)
	metrics.IndexedGeometries.Set(float64(ix.Len()))
	metrics.TreeHeight.Set(float64(ix.Tree().Height()))
	l.Info("index_ready", "indexed", ix.Len(), "height", ix.Tree().Height(), "bounds", ix.Bounds().String())

	var c *cache.Cache
	if rc := cache.Open(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rc == nil {
		l.Info("redis_disabled")
	} else {
		defer rc.Close()
		if err = rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
		c = cache.New(rc, cfg.CacheTTL, l)
	}

	mux := http.NewServeMux()
	mux.Handle("/", api.New(ix, c, l).Routes())
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           logger.AccessMiddleware(l)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	l.Info("http_listen", "addr", cfg.Addr)
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("http_error", "err", err)
		os.Exit(1)
	}
	l.Info("http_stopped")
}

func load(ctx context.Context, cfg config.Config) ([]orb.Geometry, error) {
	if cfg.PGQuery == "" {
		return dataset.LoadFile(cfg.Dataset)
	}
	db, err := dataset.OpenPostgres(cfg.PostgresDSN, cfg.PGMaxOpenConns)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return dataset.LoadPostgres(ctx, db, cfg.PGQuery)
}
