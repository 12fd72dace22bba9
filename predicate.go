// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

// Predicate selects the exact test used to refine the candidates of a
// query. Candidates are first found by envelope intersection. With
// None they are returned as-is; otherwise a candidate is kept only if
// the predicate holds between the query geometry (first argument) and
// the indexed geometry (second argument).
type Predicate int

const (
	// None keeps every envelope candidate.
	None Predicate = iota
	Intersects
	Within
	Contains
	Overlaps
	Crosses
	Touches
	Covers
	CoveredBy
	ContainsProperly
	// DWithin keeps candidates within a caller-supplied distance of
	// the query geometry. It requires WithDistance or WithDistances.
	DWithin

	numPredicates
)

var predicateNames = [numPredicates]string{
	None:             "none",
	Intersects:       "intersects",
	Within:           "within",
	Contains:         "contains",
	Overlaps:         "overlaps",
	Crosses:          "crosses",
	Touches:          "touches",
	Covers:           "covers",
	CoveredBy:        "covered_by",
	ContainsProperly: "contains_properly",
	DWithin:          "dwithin",
}

// ParsePredicate returns the Predicate with the given name. The empty
// string parses as None. Returns a *ConfigurationError for an unknown
// name.
func ParsePredicate(name string) (Predicate, error) {
	if name == "" {
		return None, nil
	}
	for p, n := range predicateNames {
		if n == name {
			return Predicate(p), nil
		}
	}
	return None, configErr("predicate %q is not valid", name)
}

// Valid reports whether p is one of the declared predicates.
func (p Predicate) Valid() bool {
	return p >= None && p < numPredicates
}

// Binary reports whether p is evaluated by the geometry engine's
// PredicateEvaluator. This is every predicate except None and
// DWithin.
func (p Predicate) Binary() bool {
	return p > None && p < DWithin
}
