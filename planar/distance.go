// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import (
	"math"

	"github.com/paulmach/orb"
	orbplanar "github.com/paulmach/orb/planar"
)

// distance returns the minimum Euclidean distance between a and b,
// stopping early as soon as it finds a distance no greater than stop.
// Returns +Inf if either shape is empty.
func distance(a, b *shape, stop float64) float64 {
	if a.isEmpty() || b.isEmpty() {
		return math.Inf(1)
	}
	// Anything inside an area is at distance zero from it.
	if insideAny(a, b) || insideAny(b, a) {
		return 0
	}

	best := math.Inf(1)
	done := false
	consider := func(d float64) {
		if d < best {
			best = d
		}
		done = best <= stop
	}

	for _, p := range a.points {
		for _, q := range b.points {
			consider(orbplanar.Distance(p, q))
			if done {
				return best
			}
		}
		b.segments(func(t segment, _ bool) {
			if !done {
				consider(orbplanar.DistanceFromSegment(t.a, t.b, p))
			}
		})
		if done {
			return best
		}
	}
	for _, q := range b.points {
		a.segments(func(s segment, _ bool) {
			if !done {
				consider(orbplanar.DistanceFromSegment(s.a, s.b, q))
			}
		})
		if done {
			return best
		}
	}
	a.segments(func(s segment, _ bool) {
		b.segments(func(t segment, _ bool) {
			if !done {
				consider(segmentDistance(s, t))
			}
		})
	})

	return best
}

// insideAny reports whether any vertex of a lies in or on an areal
// part of b.
func insideAny(a, b *shape) bool {
	if len(b.polys) == 0 {
		return false
	}
	found := false
	a.vertices(func(p orb.Point) {
		if found {
			return
		}
		for _, poly := range b.polys {
			if orbplanar.PolygonContains(poly, p) {
				found = true
				return
			}
		}
	})
	return found
}

func segmentDistance(s, t segment) float64 {
	if len(intersect(s, t)) > 0 {
		return 0
	}
	return math.Min(
		math.Min(orbplanar.DistanceFromSegment(t.a, t.b, s.a), orbplanar.DistanceFromSegment(t.a, t.b, s.b)),
		math.Min(orbplanar.DistanceFromSegment(s.a, s.b, t.a), orbplanar.DistanceFromSegment(s.a, s.b, t.b)),
	)
}
