// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import (
	"math"

	"github.com/gogama/strtree"
	"github.com/gogama/strtree/packedrtree"
	"github.com/paulmach/orb"
)

// Engine is a strtree.Engine for orb.Geometry values which also
// implements strtree.PredicateEvaluator and strtree.DistanceTester.
//
// The zero value is ready to use, and an Engine is safe for concurrent
// use by multiple goroutines.
type Engine struct{}

var (
	_ strtree.Engine[orb.Geometry]             = Engine{}
	_ strtree.PredicateEvaluator[orb.Geometry] = Engine{}
	_ strtree.DistanceTester[orb.Geometry]     = Engine{}
)

// Envelope returns the bounding box of g.
func (Engine) Envelope(g orb.Geometry) packedrtree.Box {
	return decompose(g).box
}

// IsMissing reports whether g is nil.
func (Engine) IsMissing(g orb.Geometry) bool {
	return g == nil
}

// IsEmpty reports whether g has no coordinates. A nil geometry is
// missing, not empty.
func (Engine) IsEmpty(g orb.Geometry) bool {
	return g != nil && decompose(g).isEmpty()
}

// Distance returns the minimum Euclidean distance between a and b. It
// is zero if they intersect and +Inf if either is empty.
func (Engine) Distance(a, b orb.Geometry) (float64, error) {
	return distance(decompose(a), decompose(b), math.Inf(-1)), nil
}

// Evaluate decides the binary predicate p between a and b. Returns a
// *strtree.UnsupportedCapabilityError if p is None or DWithin.
func (Engine) Evaluate(p strtree.Predicate, a, b orb.Geometry) (bool, error) {
	return evaluate(p, decompose(a), decompose(b))
}

// WithinDistance reports whether a and b are no more than d apart. It
// stops as soon as it finds parts of a and b that close.
func (Engine) WithinDistance(a, b orb.Geometry, d float64) (bool, error) {
	return distance(decompose(a), decompose(b), d) <= d, nil
}
