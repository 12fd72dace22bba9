// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"math"

	"github.com/gogama/strtree/packedrtree"
)

// Pairs is the result of a batch operation: a list of (query, tree)
// index pairs held as parallel slices of equal length. Pair i matches
// query geometry Query[i] with indexed geometry Tree[i].
//
// Pairs are grouped by query index in ascending order. Within a
// query, tree indices follow tree traversal order, which is
// deterministic for a given Index but otherwise unspecified.
type Pairs struct {
	Query []int
	Tree  []int
	// Distance, if not nil, holds the distance between each pair's
	// geometries. Only NearestAll with ReturnDistance fills it.
	Distance []float64
}

// Len returns the number of pairs.
func (p Pairs) Len() int {
	return len(p.Query)
}

type queryConfig struct {
	distances []float64
}

// A QueryOption configures Query and QueryBulk.
type QueryOption func(*queryConfig)

// WithDistance sets the distance threshold of the DWithin predicate
// for every query geometry.
func WithDistance(d float64) QueryOption {
	return func(cfg *queryConfig) {
		cfg.distances = []float64{d}
	}
}

// WithDistances sets per-query distance thresholds of the DWithin
// predicate. A single value applies to every query geometry;
// otherwise there must be exactly one value per query geometry.
func WithDistances(ds []float64) QueryOption {
	c := make([]float64, len(ds))
	copy(c, ds)
	return func(cfg *queryConfig) {
		cfg.distances = c
	}
}

// Query returns the tree indices of the indexed geometries matching g.
//
// A geometry matches if its envelope intersects the envelope of g and,
// unless p is None, predicate p holds between g and the geometry. For
// DWithin the query envelope is first grown by the distance threshold
// so that every geometry within that distance is a candidate.
//
// A missing or empty g matches nothing. The order of the returned
// indices is the tree traversal order (see Pairs).
//
// Returns a *ConfigurationError for an invalid predicate or distance,
// and an *UnsupportedCapabilityError if p is binary and the engine is
// not a PredicateEvaluator. Errors returned by the engine are wrapped.
func (ix *Index[G]) Query(g G, p Predicate, opts ...QueryOption) ([]int, error) {
	distances, err := ix.prepareQuery(p, 1, opts)
	if err != nil {
		return nil, err
	}
	return ix.queryOne(g, p, distanceAt(distances, 0))
}

// QueryBulk runs Query for each geometry in gs and returns all matches
// as (query, tree) pairs, where Pairs.Query holds positions in gs.
//
// When the Index has a Parallelism above 1 the queries are spread over
// that many goroutines; the result is the same either way. If several
// queries fail, the error of the one with the lowest position in gs is
// returned.
func (ix *Index[G]) QueryBulk(gs []G, p Predicate, opts ...QueryOption) (Pairs, error) {
	distances, err := ix.prepareQuery(p, len(gs), opts)
	if err != nil {
		return Pairs{}, err
	}

	matches := make([][]int, len(gs))
	err = ix.fanOut(len(gs), func(i int) error {
		var err2 error
		if matches[i], err2 = ix.queryOne(gs[i], p, distanceAt(distances, i)); err2 != nil {
			return wrapErr("query geometry %d", err2, i)
		}
		return nil
	})
	if err != nil {
		return Pairs{}, err
	}

	return gather(matches), nil
}

// prepareQuery validates the predicate and options of a query over n
// geometries and returns the dwithin distances, if any.
func (ix *Index[G]) prepareQuery(p Predicate, n int, opts []QueryOption) ([]float64, error) {
	if !p.Valid() {
		return nil, configErr("predicate %s is not valid", p)
	}
	var cfg queryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if p != DWithin {
		if cfg.distances != nil {
			return nil, configErr(errDistanceNotUsed)
		}
		if p.Binary() {
			if _, ok := ix.engine.(PredicateEvaluator[G]); !ok {
				return nil, &UnsupportedCapabilityError{Capability: "predicate " + p.String()}
			}
		}
		return nil, nil
	}

	if len(cfg.distances) == 0 {
		return nil, configErr(errDistanceRequired)
	} else if len(cfg.distances) != 1 && len(cfg.distances) != n {
		return nil, configErr(errDistanceBroadcast)
	}
	for _, d := range cfg.distances {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, configErr("distance must be finite, got %v", d)
		}
	}
	return cfg.distances, nil
}

func distanceAt(distances []float64, i int) float64 {
	switch len(distances) {
	case 0:
		return 0
	case 1:
		return distances[0]
	default:
		return distances[i]
	}
}

// queryOne performs the two-phase query for a single geometry:
// envelope candidates from the tree, then exact refinement.
func (ix *Index[G]) queryOne(g G, p Predicate, d float64) ([]int, error) {
	r := make([]int, 0)
	if ix.tree.NumRefs() == 0 || !ix.indexable(g) {
		return r, nil
	}
	// No geometry is within a negative distance of another.
	if p == DWithin && d < 0 {
		return r, nil
	}

	b := ix.engine.Envelope(g)
	if p == DWithin {
		b = b.Pad(d)
	}

	refine := ix.refiner(p, d)
	var err error
	ix.tree.Visit(b, func(res packedrtree.Result) bool {
		var ok bool
		if ok, err = refine(g, ix.geoms[res.Index]); err != nil {
			err = wrapErr("%s with tree geometry %d", err, p, res.Index)
			return false
		} else if ok {
			r = append(r, res.Index)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

type refineFunc[G any] func(query, tree G) (bool, error)

// refiner returns the exact test for predicate p. The predicate's
// capability has already been checked by prepareQuery.
func (ix *Index[G]) refiner(p Predicate, d float64) refineFunc[G] {
	switch {
	case p == None:
		return func(_, _ G) (bool, error) {
			return true, nil
		}
	case p == DWithin:
		if dt, ok := ix.engine.(DistanceTester[G]); ok {
			return func(a, b G) (bool, error) {
				return dt.WithinDistance(a, b, d)
			}
		}
		return func(a, b G) (bool, error) {
			dist, err := ix.engine.Distance(a, b)
			return dist <= d, err
		}
	default:
		pe := ix.engine.(PredicateEvaluator[G])
		return func(a, b G) (bool, error) {
			return pe.Evaluate(p, a, b)
		}
	}
}

// gather flattens per-query matches into Pairs, in query order.
func gather(matches [][]int) Pairs {
	var n int
	for _, m := range matches {
		n += len(m)
	}
	pairs := Pairs{
		Query: make([]int, 0, n),
		Tree:  make([]int, 0, n),
	}
	for i, m := range matches {
		for _, j := range m {
			pairs.Query = append(pairs.Query, i)
			pairs.Tree = append(pairs.Tree, j)
		}
	}
	return pairs
}
