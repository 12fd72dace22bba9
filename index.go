// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"log/slog"
	"math"
	"time"

	"github.com/gogama/strtree/packedrtree"
)

// DefaultNodeCapacity is the maximum number of children per tree node
// used when New is not given a NodeCapacity option.
const DefaultNodeCapacity = 10

// Index is an immutable spatial index over a sequence of geometries,
// packed with the Sort-Tile-Recursive algorithm.
//
// Tree indices returned by queries are positions in the geometry
// sequence passed to New. Missing and empty geometries are not indexed
// and their positions are never returned.
//
// An Index is safe for concurrent use by multiple goroutines, provided
// its Engine is (see Synchronized).
type Index[G any] struct {
	geoms        []G
	engine       Engine[G]
	tree         *packedrtree.PackedRTree
	nodeCapacity int
	parallelism  int
	logger       *slog.Logger
}

type config struct {
	nodeCapacity int
	parallelism  int
	logger       *slog.Logger
}

// An Option configures New.
type Option func(*config)

// NodeCapacity sets the maximum number of children per tree node. It
// must be at least 2 and at most math.MaxUint16.
func NodeCapacity(c int) Option {
	return func(cfg *config) {
		cfg.nodeCapacity = c
	}
}

// Parallelism sets the number of goroutines batch operations such as
// QueryBulk, NearestBulk and NearestAll fan out over. It must be at
// least 1, which is the default.
func Parallelism(n int) Option {
	return func(cfg *config) {
		cfg.parallelism = n
	}
}

// Logger sets a logger to which New writes a debug-level summary of
// each build. By default nothing is logged.
func Logger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// New builds an Index over geoms using engine for all geometric
// operations. The geometry slice is copied; the geometries themselves
// are retained and must not be mutated while the Index is in use.
//
// Returns a *ConfigurationError if an option is invalid and a
// *ValidationError if the engine reports an invalid envelope for a
// geometry that is neither missing nor empty. Panics if engine is nil.
func New[G any](geoms []G, engine Engine[G], opts ...Option) (*Index[G], error) {
	if engine == nil {
		textPanic("nil engine")
	}

	cfg := config{
		nodeCapacity: DefaultNodeCapacity,
		parallelism:  1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.nodeCapacity < 2 {
		return nil, configErr("node capacity must be at least 2, got %d", cfg.nodeCapacity)
	} else if cfg.nodeCapacity > math.MaxUint16 {
		return nil, configErr("node capacity must be at most %d, got %d", math.MaxUint16, cfg.nodeCapacity)
	}
	if cfg.parallelism < 1 {
		return nil, configErr("parallelism must be at least 1, got %d", cfg.parallelism)
	}

	start := time.Now()
	refs, err := arena(geoms, engine)
	if err != nil {
		return nil, err
	}
	tree, err := packedrtree.New(refs, uint16(cfg.nodeCapacity))
	if err != nil {
		return nil, wrapErr("failed to pack tree", err)
	}

	ix := &Index[G]{
		geoms:        make([]G, len(geoms)),
		engine:       engine,
		tree:         tree,
		nodeCapacity: cfg.nodeCapacity,
		parallelism:  cfg.parallelism,
		logger:       cfg.logger,
	}
	copy(ix.geoms, geoms)

	if ix.logger != nil {
		ix.logger.Debug("strtree built",
			slog.Int("geometries", len(geoms)),
			slog.Int("indexed", tree.NumRefs()),
			slog.Int("node_capacity", cfg.nodeCapacity),
			slog.Int("nodes", tree.NumNodes()),
			slog.Int("height", tree.Height()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}

	return ix, nil
}

// Len returns the number of indexed geometries, i.e. those which are
// neither missing nor empty.
func (ix *Index[G]) Len() int {
	return ix.tree.NumRefs()
}

// NodeCapacity returns the maximum number of children per tree node.
func (ix *Index[G]) NodeCapacity() int {
	return ix.nodeCapacity
}

// Geometries returns a copy of the geometry sequence the Index was
// built from, including missing and empty geometries. Tree indices
// returned by queries are positions in this sequence.
func (ix *Index[G]) Geometries() []G {
	geoms := make([]G, len(ix.geoms))
	copy(geoms, ix.geoms)
	return geoms
}

// Bounds returns the envelope of all indexed geometries, or
// packedrtree.EmptyBox if nothing is indexed.
func (ix *Index[G]) Bounds() packedrtree.Box {
	return ix.tree.Bounds()
}

// Tree returns the underlying packed R-Tree, whose Ref.Index values
// are positions in Geometries.
func (ix *Index[G]) Tree() *packedrtree.PackedRTree {
	return ix.tree
}

// indexable reports whether g is neither missing nor empty.
func (ix *Index[G]) indexable(g G) bool {
	return !ix.engine.IsMissing(g) && !ix.engine.IsEmpty(g)
}
