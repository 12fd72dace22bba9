// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics holds the Prometheus collectors of strtreed.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var durationBuckets = []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000}

var (
	BuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "strtree_build_duration_ms",
		Help:    "Index build duration in milliseconds",
		Buckets: durationBuckets,
	})
	IndexedGeometries = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "strtree_indexed_geometries",
		Help: "Number of geometries in the served index",
	})
	TreeHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "strtree_tree_height",
		Help: "Number of levels in the served index",
	})
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "strtree_requests_total",
		Help: "Total number of API requests by operation and status code",
	}, []string{"op", "code"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strtree_request_duration_ms",
		Help:    "API request duration in milliseconds",
		Buckets: durationBuckets,
	}, []string{"op"})
	ResultPairs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "strtree_result_pairs",
		Help:    "Number of result pairs returned per request",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"op"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "strtree_cache_hits_total",
		Help: "Total redis cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "strtree_cache_misses_total",
		Help: "Total redis cache misses",
	})
	CacheErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "strtree_cache_errors_total",
		Help: "Total redis cache errors",
	})
)

func init() {
	prometheus.MustRegister(BuildDurationMs)
	prometheus.MustRegister(IndexedGeometries)
	prometheus.MustRegister(TreeHeight)
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(ResultPairs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheErrorsTotal)
}

// Handler returns the handler serving every registered collector, to
// be mounted at /metrics.
func Handler() http.Handler { return promhttp.Handler() }
