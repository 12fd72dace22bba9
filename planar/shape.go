// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import (
	"github.com/gogama/strtree/packedrtree"
	"github.com/paulmach/orb"
	orbplanar "github.com/paulmach/orb/planar"
)

// A segment is a straight line between two points.
type segment struct {
	a, b orb.Point
}

// A shape is a geometry decomposed into parts of each dimension.
type shape struct {
	// points are the isolated 0-dimensional parts.
	points []orb.Point
	// lines are the 1-dimensional parts. Each has at least two distinct
	// vertices.
	lines []orb.LineString
	// polys are the 2-dimensional parts. Every ring is closed and has
	// non-zero area.
	polys []orb.Polygon
	// ends are the boundary points of the 1-dimensional parts, by the
	// mod-2 rule: an endpoint is on the boundary if it ends an odd
	// number of unclosed lines.
	ends []orb.Point
	// box is the envelope of the whole shape.
	box packedrtree.Box
}

// decompose breaks g into a shape. orb.Geometry is a closed set of
// types, all handled here.
func decompose(g orb.Geometry) *shape {
	s := &shape{box: packedrtree.EmptyBox}
	s.add(g)
	s.findEnds()
	return s
}

func (s *shape) add(g orb.Geometry) {
	switch x := g.(type) {
	case orb.Point:
		s.addPoint(x)
	case orb.MultiPoint:
		for _, p := range x {
			s.addPoint(p)
		}
	case orb.LineString:
		s.addLine(x)
	case orb.MultiLineString:
		for _, l := range x {
			s.addLine(l)
		}
	case orb.Ring:
		s.addPolygon(orb.Polygon{x})
	case orb.Polygon:
		s.addPolygon(x)
	case orb.MultiPolygon:
		for _, p := range x {
			s.addPolygon(p)
		}
	case orb.Bound:
		s.addPolygon(x.ToPolygon())
	case orb.Collection:
		for _, y := range x {
			s.add(y)
		}
	}
}

func (s *shape) addPoint(p orb.Point) {
	s.points = append(s.points, p)
	s.expand(p)
}

func (s *shape) addLine(l orb.LineString) {
	l = dedupe(l)
	switch len(l) {
	case 0:
	case 1:
		s.addPoint(l[0])
	default:
		s.lines = append(s.lines, l)
		for _, p := range l {
			s.expand(p)
		}
	}
}

func (s *shape) addPolygon(p orb.Polygon) {
	if len(p) == 0 {
		return
	}
	outer := closeRing(dedupe(orb.LineString(p[0])))
	if ringArea(outer) == 0 {
		// An outer ring without area is just a line (or a point), and
		// any holes inside it are meaningless.
		s.addLine(collapse(orb.LineString(outer)))
		return
	}
	poly := orb.Polygon{outer}
	for _, hole := range p[1:] {
		if h := closeRing(dedupe(orb.LineString(hole))); ringArea(h) != 0 {
			poly = append(poly, h)
		}
	}
	s.polys = append(s.polys, poly)
	for _, p := range outer {
		s.expand(p)
	}
}

func (s *shape) expand(p orb.Point) {
	s.box.Expand(&packedrtree.Box{XMin: p[0], YMin: p[1], XMax: p[0], YMax: p[1]})
}

// findEnds computes the mod-2 boundary of the 1-dimensional parts.
func (s *shape) findEnds() {
	counts := make(map[orb.Point]int)
	var order []orb.Point
	for _, l := range s.lines {
		first, last := l[0], l[len(l)-1]
		if first == last {
			continue
		}
		for _, p := range [2]orb.Point{first, last} {
			if counts[p] == 0 {
				order = append(order, p)
			}
			counts[p]++
		}
	}
	for _, p := range order {
		if counts[p]%2 == 1 {
			s.ends = append(s.ends, p)
		}
	}
}

// isEmpty reports whether the shape has no coordinates at all.
func (s *shape) isEmpty() bool {
	return len(s.points) == 0 && len(s.lines) == 0 && len(s.polys) == 0
}

// dim returns the topological dimension of the shape, or -1 if it is
// empty.
func (s *shape) dim() int {
	switch {
	case len(s.polys) > 0:
		return 2
	case len(s.lines) > 0:
		return 1
	case len(s.points) > 0:
		return 0
	default:
		return -1
	}
}

// segments calls fn for every segment of every line and ring.
func (s *shape) segments(fn func(seg segment, areal bool)) {
	for _, l := range s.lines {
		for i := 1; i < len(l); i++ {
			fn(segment{l[i-1], l[i]}, false)
		}
	}
	for _, poly := range s.polys {
		for _, r := range poly {
			for i := 1; i < len(r); i++ {
				fn(segment{r[i-1], r[i]}, true)
			}
		}
	}
}

// vertices calls fn for every isolated point and every vertex of
// every line and ring.
func (s *shape) vertices(fn func(p orb.Point)) {
	for _, p := range s.points {
		fn(p)
	}
	for _, l := range s.lines {
		for _, p := range l {
			fn(p)
		}
	}
	for _, poly := range s.polys {
		for _, r := range poly {
			for _, p := range r {
				fn(p)
			}
		}
	}
}

// dedupe drops consecutive repeated points.
func dedupe(l orb.LineString) orb.LineString {
	if len(l) < 2 {
		return l
	}
	r := make(orb.LineString, 1, len(l))
	r[0] = l[0]
	for _, p := range l[1:] {
		if p != r[len(r)-1] {
			r = append(r, p)
		}
	}
	return r
}

// collapse reduces a line whose vertices are all collinear to the
// segment between its two extreme vertices. Other lines are returned
// unchanged.
func collapse(l orb.LineString) orb.LineString {
	if len(l) < 2 {
		return l
	}
	lo, hi := l[0], l[0]
	for _, p := range l[1:] {
		if p[0] < lo[0] || (p[0] == lo[0] && p[1] < lo[1]) {
			lo = p
		}
		if p[0] > hi[0] || (p[0] == hi[0] && p[1] > hi[1]) {
			hi = p
		}
	}
	for _, p := range l {
		if orient(lo, hi, p) != 0 {
			return l
		}
	}
	if lo == hi {
		return l[:1]
	}
	return orb.LineString{lo, hi}
}

func closeRing(l orb.LineString) orb.Ring {
	if len(l) > 1 && l[0] != l[len(l)-1] {
		l = append(l[:len(l):len(l)], l[0])
	}
	return orb.Ring(l)
}

// ringArea returns the unsigned area of a closed ring.
func ringArea(r orb.Ring) float64 {
	if len(r) < 4 {
		return 0
	}
	return orbplanar.Area(r)
}
