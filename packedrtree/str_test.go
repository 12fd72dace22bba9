// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTile(t *testing.T) {
	t.Run("Spans", func(t *testing.T) {
		testCases := []struct {
			n        int
			nodeSize int
			expected []span
		}{
			{0, 2, nil},
			{1, 2, []span{{0, 1}}},
			{2, 2, []span{{0, 2}}},
			{5, 2, []span{{0, 2}, {2, 3}, {3, 5}}},
			{9, 3, []span{{0, 3}, {3, 5}, {5, 8}, {8, 9}}},
			{10, 10, []span{{0, 10}}},
			{16, 4, []span{{0, 4}, {4, 8}, {8, 12}, {12, 16}}},
			{17, 4, []span{{0, 4}, {4, 6}, {6, 10}, {10, 12}, {12, 16}, {16, 17}}},
		}

		for _, testCase := range testCases {
			t.Run(fmt.Sprintf("n=%d,nodeSize=%d", testCase.n, testCase.nodeSize), func(t *testing.T) {
				items := make([]Ref, testCase.n)
				for i := range items {
					items[i] = Ref{Box: Box{float64(i), 0, float64(i), 0}, Index: i}
				}

				actual := tile(items, testCase.nodeSize, refBox)

				assert.Equal(t, testCase.expected, actual)
			})
		}
	})

	t.Run("Order", func(t *testing.T) {
		// A 3x3 grid of points, listed row by row from the top.
		var items []Ref
		for y := 2; y >= 0; y-- {
			for x := 0; x < 3; x++ {
				items = append(items, Ref{Box: Box{float64(x), float64(y), float64(x), float64(y)}, Index: 3*(2-y) + x})
			}
		}

		spans := tile(items, 3, refBox)

		// Nine items in nodes of three need three parents, so two
		// slices of five and four items are cut by X and then each
		// sorted by Y.
		assert.Equal(t, []span{{0, 3}, {3, 5}, {5, 8}, {8, 9}}, spans)
		var order []int
		for i := range items {
			order = append(order, items[i].Index)
		}
		assert.Equal(t, []int{6, 3, 4, 0, 1, 7, 8, 5, 2}, order)
	})

	t.Run("Stable", func(t *testing.T) {
		items := make([]Ref, 6)
		for i := range items {
			items[i] = Ref{Box: Box{1, 1, 1, 1}, Index: i}
		}

		_ = tile(items, 2, refBox)

		for i := range items {
			assert.Equal(t, i, items[i].Index)
		}
	})
}

func TestCeilDiv(t *testing.T) {
	testCases := []struct {
		a, b, expected int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{9, 2, 5},
	}

	for _, testCase := range testCases {
		t.Run(fmt.Sprintf("%d/%d", testCase.a, testCase.b), func(t *testing.T) {
			assert.Equal(t, testCase.expected, ceilDiv(testCase.a, testCase.b))
		})
	}
}
