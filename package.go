// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package strtree provides a read-only spatial index over a sequence
// of geometries, packed once with the Sort-Tile-Recursive (STR)
// algorithm and then queried any number of times.
//
// The index is generic over the geometry type. All geometric work,
// from envelopes through exact predicates to distances, is delegated
// to an Engine; package planar provides one for
// github.com/paulmach/orb geometries. The tree itself lives in package
// packedrtree and knows only bounding boxes.
//
// Queries run in two phases. Candidates whose envelopes intersect the
// query envelope are found by walking the tree, and then, if a
// Predicate other than None is given, each candidate is tested exactly
// by the Engine. Nearest-neighbor searches are best-first, expanding
// tree nodes in order of their minimum possible distance from the
// query.
//
// Every operation has a single-geometry form returning tree indices
// and a batch form returning Pairs. Batch forms can fan out over
// several goroutines (see Parallelism).
package strtree
