// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import (
	"math"

	"github.com/paulmach/orb"
	orbplanar "github.com/paulmach/orb/planar"
)

// A location is the position of a point relative to a geometry.
type location int

const (
	interior location = iota
	boundary
	exterior
)

// relTolerance scales the largest coordinate magnitude in play to give
// the distance within which a point is taken to lie on a segment.
const relTolerance = 1e-12

// orient returns a positive value if c lies to the left of the
// directed line from a to b, negative if it lies to the right and zero
// if the three points are collinear.
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// near reports whether p lies within tol of segment s.
func near(p orb.Point, s segment, tol float64) bool {
	if p[0] < math.Min(s.a[0], s.b[0])-tol || p[0] > math.Max(s.a[0], s.b[0])+tol ||
		p[1] < math.Min(s.a[1], s.b[1])-tol || p[1] > math.Max(s.a[1], s.b[1])+tol {
		return false
	}
	return orbplanar.DistanceFromSegment(s.a, s.b, p) <= tol
}

// locate returns the location of p relative to s. A point interior to
// any part of s is interior to s; otherwise a point on the boundary of
// any part is on the boundary of s.
func (s *shape) locate(p orb.Point, tol float64) location {
	onBoundary := false
	for _, poly := range s.polys {
		switch locatePolygon(p, poly, tol) {
		case interior:
			return interior
		case boundary:
			onBoundary = true
		}
	}
	for _, l := range s.lines {
		for i := 1; i < len(l); i++ {
			if !near(p, segment{l[i-1], l[i]}, tol) {
				continue
			}
			if s.isEnd(p, tol) {
				onBoundary = true
				break
			}
			return interior
		}
	}
	for _, q := range s.points {
		if orbplanar.Distance(p, q) <= tol {
			return interior
		}
	}
	if onBoundary {
		return boundary
	}
	return exterior
}

func (s *shape) isEnd(p orb.Point, tol float64) bool {
	for _, e := range s.ends {
		if orbplanar.Distance(p, e) <= tol {
			return true
		}
	}
	return false
}

func locatePolygon(p orb.Point, poly orb.Polygon, tol float64) location {
	for _, r := range poly {
		for i := 1; i < len(r); i++ {
			if near(p, segment{r[i-1], r[i]}, tol) {
				return boundary
			}
		}
	}
	if orbplanar.PolygonContains(poly, p) {
		return interior
	}
	return exterior
}

// intersect returns the points where segments s and t meet: none if
// they are disjoint, one if they cross or touch, and the two ends of
// the shared part if they overlap collinearly.
func intersect(s, t segment) []orb.Point {
	d1 := orient(t.a, t.b, s.a)
	d2 := orient(t.a, t.b, s.b)
	d3 := orient(s.a, s.b, t.a)
	d4 := orient(s.a, s.b, t.b)

	if d1 == 0 && d2 == 0 {
		return overlap(s, t)
	}
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		u := d1 / (d1 - d2)
		return []orb.Point{{
			s.a[0] + u*(s.b[0]-s.a[0]),
			s.a[1] + u*(s.b[1]-s.a[1]),
		}}
	}

	var r []orb.Point
	switch {
	case d1 == 0 && within(s.a, t):
		r = append(r, s.a)
	case d2 == 0 && within(s.b, t):
		r = append(r, s.b)
	case d3 == 0 && within(t.a, s):
		r = append(r, t.a)
	case d4 == 0 && within(t.b, s):
		r = append(r, t.b)
	}
	return r
}

// within reports whether p, known to be collinear with s, lies within
// s's extent.
func within(p orb.Point, s segment) bool {
	return math.Min(s.a[0], s.b[0]) <= p[0] && p[0] <= math.Max(s.a[0], s.b[0]) &&
		math.Min(s.a[1], s.b[1]) <= p[1] && p[1] <= math.Max(s.a[1], s.b[1])
}

// overlap returns the ends of the shared part of two collinear
// segments, which is a single point if they only touch.
func overlap(s, t segment) []orb.Point {
	var r []orb.Point
	add := func(p orb.Point) {
		for _, q := range r {
			if q == p {
				return
			}
		}
		r = append(r, p)
	}
	for _, p := range [2]orb.Point{s.a, s.b} {
		if within(p, t) {
			add(p)
		}
	}
	for _, p := range [2]orb.Point{t.a, t.b} {
		if within(p, s) {
			add(p)
		}
	}
	return r
}
