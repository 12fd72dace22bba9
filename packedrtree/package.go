// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package packedrtree provides an immutable R-Tree of bounding boxes
// bulk-loaded with the Sort-Tile-Recursive (STR) packing algorithm,
// together with box intersection search and best-first
// nearest-neighbor search.
//
// The package knows nothing about geometries: every indexed item is a
// Ref, a bounding Box plus the caller's own integer index. Exact
// geometric refinement, where needed, is layered on top by the caller,
// for example through the DistanceFunc passed to Nearest.
//
// A PackedRTree is never modified after New returns, so any number of
// goroutines may search the same tree concurrently without locking.
package packedrtree
