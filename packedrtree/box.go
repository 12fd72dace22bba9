// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"math"
)

// Box is a two-dimensional axis-aligned bounding box. A Box is valid
// when XMin <= XMax and YMin <= YMax. Zero-width and zero-height boxes,
// such as the envelope of a point, are valid.
type Box struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// EmptyBox is the identity value for Expand: it contains nothing, and
// expanding it by any valid Box yields that Box. Don't start
// accumulating bounds from the zero Box, which contains the origin.
var EmptyBox = Box{
	XMin: math.Inf(1),
	YMin: math.Inf(1),
	XMax: math.Inf(-1),
	YMax: math.Inf(-1),
}

// String returns the box in the form [XMin,YMin,XMax,YMax].
func (b Box) String() string {
	return fmt.Sprintf("[%.8g,%.8g,%.8g,%.8g]", b.XMin, b.YMin, b.XMax, b.YMax)
}

// Width returns the extent of the box along the X axis.
func (b *Box) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the extent of the box along the Y axis.
func (b *Box) Height() float64 {
	return b.YMax - b.YMin
}

// IsEmpty reports whether the box contains no points, which is the
// case for EmptyBox and for any inverted or NaN-valued box.
func (b *Box) IsEmpty() bool {
	return !(b.XMin <= b.XMax && b.YMin <= b.YMax)
}

func (b *Box) midX() float64 {
	return (b.XMin + b.XMax) / 2
}

func (b *Box) midY() float64 {
	return (b.YMin + b.YMax) / 2
}

// Expand grows the box, if necessary, so that it also covers c.
func (b *Box) Expand(c *Box) {
	if c.XMin < b.XMin {
		b.XMin = c.XMin
	}
	if c.YMin < b.YMin {
		b.YMin = c.YMin
	}
	if c.XMax > b.XMax {
		b.XMax = c.XMax
	}
	if c.YMax > b.YMax {
		b.YMax = c.YMax
	}
}

// Intersects reports whether the two boxes share at least one point.
// Boxes that only touch along an edge or at a corner intersect. An
// empty box intersects nothing.
func (b *Box) Intersects(o *Box) bool {
	return b.XMin <= o.XMax && o.XMin <= b.XMax &&
		b.YMin <= o.YMax && o.YMin <= b.YMax
}

// Pad returns a copy of the box grown by d on every side. Padding an
// empty box returns EmptyBox, and a negative d may produce an empty
// box.
func (b Box) Pad(d float64) Box {
	if b.IsEmpty() {
		return EmptyBox
	}
	return Box{
		XMin: b.XMin - d,
		YMin: b.YMin - d,
		XMax: b.XMax + d,
		YMax: b.YMax + d,
	}
}

// Distance returns the minimum Euclidean distance between any point in
// b and any point in o. It is zero when the boxes intersect, and
// +Inf when either box is empty.
//
// The distance between two boxes is a lower bound on the distance
// between any two geometries they respectively bound, which is what
// makes it usable for pruning nearest-neighbor searches.
func (b *Box) Distance(o *Box) float64 {
	if b.IsEmpty() || o.IsEmpty() {
		return math.Inf(1)
	}
	dx := axisGap(b.XMin, b.XMax, o.XMin, o.XMax)
	dy := axisGap(b.YMin, b.YMax, o.YMin, o.YMax)
	if dx == 0 {
		return dy
	} else if dy == 0 {
		return dx
	}
	return math.Sqrt(dx*dx + dy*dy)
}

// axisGap returns the gap between the closed intervals [amin, amax]
// and [bmin, bmax], or zero if they overlap.
func axisGap(amin, amax, bmin, bmax float64) float64 {
	if amax < bmin {
		return bmin - amax
	} else if bmax < amin {
		return amin - bmax
	}
	return 0
}
