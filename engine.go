// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"sync"

	"github.com/gogama/strtree/packedrtree"
)

// An Engine supplies the geometric operations an Index needs over
// opaque geometry values of type G.
//
// Unless wrapped with Synchronized, an Engine must be safe for
// concurrent use when the Index has a Parallelism above 1.
type Engine[G any] interface {
	// Envelope returns the axis-aligned bounding box of g. It is only
	// called for geometries which are neither missing nor empty.
	Envelope(g G) packedrtree.Box
	// IsMissing reports whether g is absent, e.g. a nil value.
	IsMissing(g G) bool
	// IsEmpty reports whether g is present but has no coordinates.
	IsEmpty(g G) bool
	// Distance returns the minimum distance between a and b, which is
	// zero if they intersect. It must never be less than the distance
	// between their envelopes.
	Distance(a, b G) (float64, error)
}

// A PredicateEvaluator is an Engine capability which evaluates the
// binary predicates, those for which Predicate.Binary is true.
type PredicateEvaluator[G any] interface {
	Evaluate(p Predicate, a, b G) (bool, error)
}

// A DistanceTester is an Engine capability which decides the dwithin
// predicate directly. Without it, dwithin is evaluated as
// Distance(a, b) <= d.
type DistanceTester[G any] interface {
	WithinDistance(a, b G, d float64) (bool, error)
}

// Synchronized returns an Engine that serializes every call to e
// through a mutex. Use it to share an engine that is not safe for
// concurrent use with an Index whose Parallelism is above 1: tree
// traversal stays parallel and only the engine calls are serialized.
//
// The returned Engine has exactly the optional capabilities e has.
func Synchronized[G any](e Engine[G]) Engine[G] {
	if e == nil {
		textPanic("nil engine")
	}
	s := &syncEngine[G]{e: e}
	pe, isPE := e.(PredicateEvaluator[G])
	dt, isDT := e.(DistanceTester[G])
	switch {
	case isPE && isDT:
		return &syncFull[G]{syncEvaluator[G]{s, pe}, dt}
	case isPE:
		return &syncEvaluator[G]{s, pe}
	case isDT:
		return &syncTester[G]{s, dt}
	default:
		return s
	}
}

type syncEngine[G any] struct {
	mu sync.Mutex
	e  Engine[G]
}

func (s *syncEngine[G]) Envelope(g G) packedrtree.Box {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Envelope(g)
}

func (s *syncEngine[G]) IsMissing(g G) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.IsMissing(g)
}

func (s *syncEngine[G]) IsEmpty(g G) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.IsEmpty(g)
}

func (s *syncEngine[G]) Distance(a, b G) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Distance(a, b)
}

type syncEvaluator[G any] struct {
	*syncEngine[G]
	pe PredicateEvaluator[G]
}

func (s *syncEvaluator[G]) Evaluate(p Predicate, a, b G) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pe.Evaluate(p, a, b)
}

type syncTester[G any] struct {
	*syncEngine[G]
	dt DistanceTester[G]
}

func (s *syncTester[G]) WithinDistance(a, b G, d float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dt.WithinDistance(a, b, d)
}

type syncFull[G any] struct {
	syncEvaluator[G]
	dt DistanceTester[G]
}

func (s *syncFull[G]) WithinDistance(a, b G, d float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dt.WithinDistance(a, b, d)
}
