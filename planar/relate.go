// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// empty marks a cell of a matrix whose sets do not intersect.
const empty = -1

// A matrix is a dimensionally extended nine-intersection matrix. Cell
// [i][j] holds the dimension of the intersection of location i of the
// first geometry with location j of the second, or empty.
type matrix [3][3]int

// String returns the matrix in the usual nine-character form, such as
// "212101212".
func (m *matrix) String() string {
	b := make([]byte, 0, 9)
	for i := range m {
		for j := range m[i] {
			if m[i][j] == empty {
				b = append(b, 'F')
			} else {
				b = append(b, byte('0'+m[i][j]))
			}
		}
	}
	return string(b)
}

func (m *matrix) record(i, j location, dim int) {
	if dim > m[i][j] {
		m[i][j] = dim
	}
}

// relate computes the intersection matrix of a and b, neither of
// which may be empty.
//
// The matrix is found by probing. Every segment of either geometry is
// split at every point where it meets the other, so the open pieces
// between split points each lie entirely within one location of the
// other geometry. Locating the vertices, the split points and the
// midpoint of each piece fills in the 0- and 1-dimensional cells. For
// areal parts, a point just to each side of every boundary piece
// samples the faces of the overlay, filling in the 2-dimensional
// cells.
func relate(a, b *shape) matrix {
	var m matrix
	for i := range m {
		for j := range m[i] {
			m[i][j] = empty
		}
	}
	m[exterior][exterior] = 2

	box := a.box
	box.Expand(&b.box)
	scale := math.Max(math.Max(math.Abs(box.XMin), math.Abs(box.XMax)), math.Max(math.Abs(box.YMin), math.Abs(box.YMax)))
	tol := relTolerance * math.Max(1, scale)

	probe := func(p orb.Point, dim int) {
		la, lb := a.locate(p, tol), b.locate(p, tol)
		if dim == 2 && (la == boundary || lb == boundary) {
			// Too close to an edge to sample a face.
			return
		}
		m.record(la, lb, dim)
	}

	a.vertices(func(p orb.Point) { probe(p, 0) })
	b.vertices(func(p orb.Point) { probe(p, 0) })

	pieces := func(s, other *shape) {
		s.segments(func(seg segment, areal bool) {
			splits := []float64{0, 1}
			other.segments(func(t segment, _ bool) {
				for _, p := range intersect(seg, t) {
					probe(p, 0)
					splits = append(splits, param(seg, p))
				}
			})
			other.vertices(func(p orb.Point) {
				if near(p, seg, tol) {
					splits = append(splits, param(seg, p))
				}
			})
			sort.Float64s(splits)
			for i := 1; i < len(splits); i++ {
				t0, t1 := splits[i-1], splits[i]
				if t1-t0 <= 0 {
					continue
				}
				mid := at(seg, (t0+t1)/2)
				probe(mid, 1)
				if areal {
					sides(seg, mid, (t1-t0)*length(seg), tol, probe)
				}
			}
		})
	}
	pieces(a, b)
	pieces(b, a)

	// Any areal part has an interior, and the other geometry cannot
	// cover all of it unless it is areal too.
	if a.dim() == 2 && b.dim() < 2 {
		m.record(interior, exterior, 2)
	}
	if b.dim() == 2 && a.dim() < 2 {
		m.record(exterior, interior, 2)
	}

	return m
}

// param returns the position of p, which is on or very near segment s,
// as a fraction of the way from s.a to s.b, clamped to [0, 1].
func param(s segment, p orb.Point) float64 {
	dx, dy := s.b[0]-s.a[0], s.b[1]-s.a[1]
	t := ((p[0]-s.a[0])*dx + (p[1]-s.a[1])*dy) / (dx*dx + dy*dy)
	return math.Max(0, math.Min(1, t))
}

func at(s segment, t float64) orb.Point {
	return orb.Point{s.a[0] + t*(s.b[0]-s.a[0]), s.a[1] + t*(s.b[1]-s.a[1])}
}

func length(s segment) float64 {
	return math.Hypot(s.b[0]-s.a[0], s.b[1]-s.a[1])
}

// sides probes a point just to each side of a boundary piece of given
// length centered at mid on segment s. The offset is kept well clear of
// tol, which grows with coordinate magnitude, and well inside the piece.
func sides(s segment, mid orb.Point, pieceLen, tol float64, probe func(orb.Point, int)) {
	d := math.Max(1e-6*pieceLen, 8*tol)
	if d >= pieceLen/2 {
		return
	}
	l := length(s)
	nx, ny := -(s.b[1]-s.a[1])/l, (s.b[0]-s.a[0])/l
	probe(orb.Point{mid[0] + d*nx, mid[1] + d*ny}, 2)
	probe(orb.Point{mid[0] - d*nx, mid[1] - d*ny}, 2)
}
