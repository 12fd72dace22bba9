// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Distance(t *testing.T) {
	donut := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{3, 3}, {7, 3}, {7, 7}, {3, 7}, {3, 3}},
	}

	testCases := []struct {
		name     string
		a, b     orb.Geometry
		expected float64
	}{
		{"PointPoint", orb.Point{0, 0}, orb.Point{3, 4}, 5},
		{"SamePoint", pIn, pIn, 0},
		{"PointLine", orb.Point{0, 0}, orb.LineString{{1, -1}, {1, 1}}, 1},
		{"PointLineEnd", orb.Point{0, 0}, orb.LineString{{3, 4}, {6, 8}}, 5},
		{"LinePoint", orb.LineString{{1, -1}, {1, 1}}, orb.Point{0, 0}, 1},
		{"CrossingLines", l1, l2, 0},
		{"ParallelLines", orb.LineString{{0, 0}, {4, 0}}, orb.LineString{{1, 2}, {3, 2}}, 2},
		{"PointInPolygon", pIn, sq, 0},
		{"PolygonContainsPoint", sq, pIn, 0},
		{"PointOutsidePolygon", orb.Point{5, 1}, sq, 3},
		{"LineInsidePolygon", lineIn, sq, 0},
		{"PolygonInsidePolygon", inner, sq, 0},
		{"SharedEdge", sq, adj, 0},
		{"Polygons", sq, far, math.Sqrt(18)},
		{"PointInHole", orb.Point{5, 5}, donut, 2},
		{"PolygonInHole", square(4, 4, 6, 6), donut, 1},
		{"MultiPoint", orb.MultiPoint{{10, 10}, {0, 3}}, sq, 1},
		{"Collection", orb.Collection{orb.Point{10, 10}, orb.LineString{{4, 0}, {4, 2}}}, sq, 2},
		{"Bound", orb.Bound{Min: orb.Point{3, 0}, Max: orb.Point{4, 1}}, sq, 1},
		{"DegenerateBound", orb.Bound{Min: orb.Point{3, 0}, Max: orb.Point{3, 5}}, sq, 1},
		{"EmptyFirst", orb.LineString{}, sq, math.Inf(1)},
		{"EmptySecond", sq, orb.MultiPolygon{}, math.Inf(1)},
		{"Missing", nil, sq, math.Inf(1)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := Engine{}.Distance(testCase.a, testCase.b)

			require.NoError(t, err)
			if math.IsInf(testCase.expected, 1) {
				assert.True(t, math.IsInf(actual, 1), "expected +Inf, got %v", actual)
			} else {
				assert.InDelta(t, testCase.expected, actual, 1e-12)
			}
		})
	}
}

func TestEngine_WithinDistance(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     orb.Geometry
		d        float64
		expected bool
	}{
		{"Inside", pIn, sq, 0, true},
		{"Exact", orb.Point{0, 0}, orb.Point{3, 4}, 5, true},
		{"TooFar", orb.Point{0, 0}, orb.Point{3, 4}, 4.999, false},
		{"Touching", sq, adj, 0, true},
		{"Polygons", sq, far, 4.25, true},
		{"PolygonsTooFar", sq, far, 4.2, false},
		{"ManyPoints", orb.MultiPoint{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, orb.Point{1, 1}, 1, true},
		{"Empty", orb.MultiPoint{}, pIn, 1e9, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := Engine{}.WithinDistance(testCase.a, testCase.b, testCase.d)

			require.NoError(t, err)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestDistance_Stop(t *testing.T) {
	a := decompose(orb.MultiPoint{{0, 0}, {10, 0}})
	b := decompose(orb.MultiPoint{{3, 0}, {10, 1}})

	assert.Equal(t, 1.0, distance(a, b, math.Inf(-1)))
	assert.Equal(t, 3.0, distance(a, b, 5), "should stop at the first distance within 5")
}
