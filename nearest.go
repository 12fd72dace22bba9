// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"math"

	"github.com/gogama/strtree/packedrtree"
)

type nearestConfig struct {
	maxDistance    float64
	hasMaxDistance bool
	returnDistance bool
}

// A NearestOption configures NearestAll.
type NearestOption func(*nearestConfig)

// MaxDistance limits NearestAll to indexed geometries within d of the
// query geometry. A query geometry with no indexed geometry that close
// contributes no pairs. d must be positive and finite.
//
// Besides truncating results, a max distance prunes the search and
// can make it much faster.
func MaxDistance(d float64) NearestOption {
	return func(cfg *nearestConfig) {
		cfg.maxDistance = d
		cfg.hasMaxDistance = true
	}
}

// ReturnDistance makes NearestAll fill Pairs.Distance.
func ReturnDistance() NearestOption {
	return func(cfg *nearestConfig) {
		cfg.returnDistance = true
	}
}

// Nearest returns the tree index of the indexed geometry nearest to g,
// as measured by the engine's Distance. If several geometries are tied
// for nearest, one of them is returned: which one depends on tree
// traversal order and is deterministic for a given Index.
//
// Returns false if the Index is empty. Otherwise returns a
// *ValidationError if g is missing or empty, since nearest is
// undefined for such a geometry. Errors returned by the engine are
// wrapped.
func (ix *Index[G]) Nearest(g G) (int, bool, error) {
	if ix.tree.NumRefs() == 0 {
		return 0, false, nil
	}
	if !ix.indexable(g) {
		return 0, false, validationErr("nearest is undefined for a missing or empty geometry")
	}
	ns, err := ix.nearestOne(g, packedrtree.Unbounded, false)
	if err != nil {
		return 0, false, err
	} else if len(ns) == 0 {
		return 0, false, nil
	}
	return ns[0].Index, true, nil
}

// NearestBulk returns, for each geometry in gs, the tree index of the
// nearest indexed geometry, with ties broken as for Nearest. Returns
// nil if the Index is empty.
//
// Returns a *ValidationError naming the first missing or empty
// geometry in gs, if there is one, before any search is done. If the
// engine's Distance never yields a comparable distance for a query,
// for example because it only returns NaN, that query's result is -1.
func (ix *Index[G]) NearestBulk(gs []G) ([]int, error) {
	if ix.tree.NumRefs() == 0 {
		return nil, nil
	}
	for i := range gs {
		if !ix.indexable(gs[i]) {
			return nil, validationErr("nearest is undefined for missing or empty query geometry %d", i)
		}
	}

	r := make([]int, len(gs))
	err := ix.fanOut(len(gs), func(i int) error {
		ns, err := ix.nearestOne(gs[i], packedrtree.Unbounded, false)
		if err != nil {
			return wrapErr("query geometry %d", err, i)
		} else if len(ns) == 0 {
			r[i] = -1
		} else {
			r[i] = ns[0].Index
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// NearestAll returns, for each geometry in gs, every indexed geometry
// tied for nearest to it, as (query, tree) pairs. Missing and empty
// query geometries are skipped and contribute no pairs.
//
// Within a query, tied tree indices follow the order in which the
// search reached them. A query geometry that is also indexed is not
// excluded from its own results.
//
// Returns a *ConfigurationError if MaxDistance is given a value that
// is not positive and finite. Returns empty Pairs if the Index is
// empty.
func (ix *Index[G]) NearestAll(gs []G, opts ...NearestOption) (Pairs, error) {
	cfg := nearestConfig{maxDistance: packedrtree.Unbounded}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasMaxDistance {
		if math.IsNaN(cfg.maxDistance) || math.IsInf(cfg.maxDistance, 0) {
			return Pairs{}, configErr("max_distance must be finite, got %v", cfg.maxDistance)
		} else if cfg.maxDistance <= 0 {
			return Pairs{}, configErr("max_distance must be greater than 0, got %v", cfg.maxDistance)
		}
	}

	if ix.tree.NumRefs() == 0 {
		return Pairs{}, nil
	}

	neighbors := make([]packedrtree.Neighbors, len(gs))
	err := ix.fanOut(len(gs), func(i int) error {
		if !ix.indexable(gs[i]) {
			return nil
		}
		var err error
		if neighbors[i], err = ix.nearestOne(gs[i], cfg.maxDistance, true); err != nil {
			return wrapErr("query geometry %d", err, i)
		}
		return nil
	})
	if err != nil {
		return Pairs{}, err
	}

	var n int
	for _, ns := range neighbors {
		n += len(ns)
	}
	pairs := Pairs{
		Query: make([]int, 0, n),
		Tree:  make([]int, 0, n),
	}
	if cfg.returnDistance {
		pairs.Distance = make([]float64, 0, n)
	}
	for i, ns := range neighbors {
		for _, nb := range ns {
			pairs.Query = append(pairs.Query, i)
			pairs.Tree = append(pairs.Tree, nb.Index)
			if cfg.returnDistance {
				pairs.Distance = append(pairs.Distance, nb.Distance)
			}
		}
	}

	return pairs, nil
}

// nearestOne runs a best-first search for the indexed geometries
// nearest to g, which must be neither missing nor empty.
func (ix *Index[G]) nearestOne(g G, maxDistance float64, all bool) (packedrtree.Neighbors, error) {
	return ix.tree.Nearest(ix.engine.Envelope(g), maxDistance, all, func(ref packedrtree.Ref) (float64, error) {
		return ix.engine.Distance(g, ix.geoms[ref.Index])
	})
}
