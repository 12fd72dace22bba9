// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package planar provides a strtree.Engine for github.com/paulmach/orb
// geometries in the Euclidean plane.
//
// Engine supports Point, MultiPoint, LineString, MultiLineString,
// Ring, Polygon, MultiPolygon, Bound and Collection. A nil geometry is
// missing, and a geometry without coordinates is empty. Degenerate
// geometries are reduced to their true dimension: a Ring or Bound with
// no area is treated as a line or a point, and a LineString with only
// one distinct vertex is treated as a point.
//
// Predicates follow the OGC simple features definitions, computed from
// a dimensionally extended intersection matrix. Coordinates are not
// snapped, but points within a tiny tolerance of a segment, scaled to
// the magnitude of the input coordinates, are treated as lying on it.
package planar
