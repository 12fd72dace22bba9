// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gogama/strtree/packedrtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagonal(n int) []*packedrtree.Box {
	points := make([]*packedrtree.Box, n)
	for i := range points {
		points[i] = point(float64(i), float64(i))
	}
	return points
}

func TestIndex_Nearest(t *testing.T) {
	t.Run("Diagonal", func(t *testing.T) {
		ix, err := New(diagonal(10), boxEngine{})
		require.NoError(t, err)

		actual, ok, err := ix.Nearest(point(2.2, 2.2))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2, actual)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		ix, err := New([]*packedrtree.Box{nil}, boxEngine{})
		require.NoError(t, err)

		_, ok, err := ix.Nearest(nil)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Invalid", func(t *testing.T) {
		ix, err := New(diagonal(3), boxEngine{})
		require.NoError(t, err)

		for _, g := range []*packedrtree.Box{nil, &packedrtree.EmptyBox} {
			_, ok, err := ix.Nearest(g)

			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, "strtree: nearest is undefined for a missing or empty geometry")
		}
	})

	t.Run("Tie", func(t *testing.T) {
		ix, err := New([]*packedrtree.Box{point(0, 0), point(0, 0)}, boxEngine{})
		require.NoError(t, err)

		actual, ok, err := ix.Nearest(point(1, 1))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, []int{0, 1}, actual)
	})

	t.Run("SkipsMissing", func(t *testing.T) {
		ix, err := New([]*packedrtree.Box{nil, point(5, 5), nil, point(9, 9)}, boxEngine{})
		require.NoError(t, err)

		actual, ok, err := ix.Nearest(point(0, 0))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, actual)
	})

	t.Run("EngineError", func(t *testing.T) {
		q := point(0, 0)
		ix, err := New(diagonal(3), failingEngine{fail: map[*packedrtree.Box]bool{q: true}})
		require.NoError(t, err)

		_, ok, err := ix.Nearest(q)

		assert.False(t, ok)
		assert.ErrorIs(t, err, errBoom)
		assert.EqualError(t, err, "packedrtree: distance to ref with index 0: boom")
	})

	t.Run("BruteForce", func(t *testing.T) {
		r := rand.New(rand.NewSource(17))
		geoms := randomBoxes(r, 400)
		ix, err := New(geoms, boxEngine{}, NodeCapacity(5))
		require.NoError(t, err)

		for _, q := range randomBoxes(r, 50) {
			actual, ok, err := ix.Nearest(q)
			require.NoError(t, err)
			require.True(t, ok)

			best := math.Inf(1)
			for _, g := range geoms {
				best = math.Min(best, q.Distance(g))
			}
			assert.Equal(t, best, q.Distance(geoms[actual]))
		}
	})
}

func TestIndex_NearestBulk(t *testing.T) {
	t.Run("Diagonal", func(t *testing.T) {
		ix, err := New(diagonal(10), boxEngine{}, Parallelism(3))
		require.NoError(t, err)

		actual, err := ix.NearestBulk([]*packedrtree.Box{point(2.2, 2.2), point(-5, -5), point(100, 100), point(6.9, 6.9)})

		require.NoError(t, err)
		assert.Equal(t, []int{2, 0, 9, 7}, actual)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		ix, err := New[*packedrtree.Box](nil, boxEngine{})
		require.NoError(t, err)

		actual, err := ix.NearestBulk([]*packedrtree.Box{nil, point(0, 0)})

		assert.NoError(t, err)
		assert.Nil(t, actual)
	})

	t.Run("Invalid", func(t *testing.T) {
		ix, err := New(diagonal(3), boxEngine{})
		require.NoError(t, err)

		actual, err := ix.NearestBulk([]*packedrtree.Box{point(0, 0), nil, &packedrtree.EmptyBox})

		assert.Nil(t, actual)
		assert.ErrorIs(t, err, ErrValidation)
		assert.EqualError(t, err, "strtree: nearest is undefined for missing or empty query geometry 1")
	})

	t.Run("NoComparableDistance", func(t *testing.T) {
		m := &mockEngine{}
		m.On("IsMissing", 0).Return(false)
		m.On("IsEmpty", 0).Return(false)
		m.On("Envelope", 0).Return(packedrtree.Box{XMax: 1, YMax: 1})
		m.On("Distance", 0, 0).Return(math.NaN(), nil)
		ix, err := New([]int{0}, m)
		require.NoError(t, err)

		actual, err := ix.NearestBulk([]int{0})

		require.NoError(t, err)
		assert.Equal(t, []int{-1}, actual)
	})

	t.Run("LowestError", func(t *testing.T) {
		geoms := diagonal(20)
		e := failingEngine{fail: map[*packedrtree.Box]bool{geoms[4]: true, geoms[15]: true}}
		ix, err := New(geoms, e, Parallelism(4))
		require.NoError(t, err)

		_, err = ix.NearestBulk(geoms)

		assert.ErrorIs(t, err, errBoom)
		assert.EqualError(t, err, "strtree: query geometry 4: packedrtree: distance to ref with index 4: boom")
	})
}

func TestIndex_NearestAll(t *testing.T) {
	t.Run("Diagonal", func(t *testing.T) {
		ix, err := New(diagonal(10), boxEngine{})
		require.NoError(t, err)

		pairs, err := ix.NearestAll([]*packedrtree.Box{point(2.2, 2.2), nil, point(6.9, 6.9)})

		require.NoError(t, err)
		assert.Equal(t, Pairs{Query: []int{0, 2}, Tree: []int{2, 7}}, pairs)
	})

	t.Run("Ties", func(t *testing.T) {
		ix, err := New([]*packedrtree.Box{point(0, 0), point(2, 0), point(0, 0), point(5, 5)}, boxEngine{})
		require.NoError(t, err)

		pairs, err := ix.NearestAll([]*packedrtree.Box{point(1, 0)}, ReturnDistance())

		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0}, pairs.Query)
		assert.ElementsMatch(t, []int{0, 1, 2}, pairs.Tree)
		assert.Equal(t, []float64{1, 1, 1}, pairs.Distance)
	})

	t.Run("MissingQuery", func(t *testing.T) {
		ix, err := New([]*packedrtree.Box{point(0, 0), point(1, 1)}, boxEngine{})
		require.NoError(t, err)

		pairs, err := ix.NearestAll([]*packedrtree.Box{nil, point(1, 1)})

		require.NoError(t, err)
		assert.Equal(t, Pairs{Query: []int{1}, Tree: []int{1}}, pairs)
	})

	t.Run("EmptyIndex", func(t *testing.T) {
		ix, err := New[*packedrtree.Box](nil, boxEngine{})
		require.NoError(t, err)

		pairs, err := ix.NearestAll([]*packedrtree.Box{point(0, 0)}, ReturnDistance())

		require.NoError(t, err)
		assert.Equal(t, 0, pairs.Len())
		assert.Nil(t, pairs.Distance)
	})

	t.Run("MaxDistance", func(t *testing.T) {
		ix, err := New([]*packedrtree.Box{point(0, 0), point(10, 0)}, boxEngine{})
		require.NoError(t, err)

		testCases := []struct {
			name     string
			d        float64
			expected Pairs
		}{
			{"TooShort", 3, Pairs{Query: []int{}, Tree: []int{}, Distance: []float64{}}},
			{"Reaches", 4, Pairs{Query: []int{0}, Tree: []int{0}, Distance: []float64{4}}},
			{"Far", 100, Pairs{Query: []int{0}, Tree: []int{0}, Distance: []float64{4}}},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				pairs, err := ix.NearestAll([]*packedrtree.Box{point(4, 0)}, MaxDistance(testCase.d), ReturnDistance())

				require.NoError(t, err)
				assert.Equal(t, testCase.expected, pairs)
			})
		}
	})

	t.Run("InvalidMaxDistance", func(t *testing.T) {
		testCases := []struct {
			name    string
			d       float64
			wantErr string
		}{
			{"Zero", 0, "strtree: max_distance must be greater than 0, got 0"},
			{"Negative", -1, "strtree: max_distance must be greater than 0, got -1"},
			{"NaN", math.NaN(), "strtree: max_distance must be finite, got NaN"},
			{"Inf", math.Inf(1), "strtree: max_distance must be finite, got +Inf"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				// The option is validated even if the index is empty.
				ix, err := New[*packedrtree.Box](nil, boxEngine{})
				require.NoError(t, err)

				_, err = ix.NearestAll([]*packedrtree.Box{point(0, 0)}, MaxDistance(testCase.d))

				assert.ErrorIs(t, err, ErrConfiguration)
				assert.EqualError(t, err, testCase.wantErr)
			})
		}
	})

	t.Run("ParallelMatchesSequential", func(t *testing.T) {
		r := rand.New(rand.NewSource(19))
		geoms := randomBoxes(r, 600)
		queries := randomBoxes(r, 200)

		sequential, err := New(geoms, boxEngine{})
		require.NoError(t, err)
		parallel, err := New(geoms, boxEngine{}, Parallelism(5))
		require.NoError(t, err)

		expected, err := sequential.NearestAll(queries, ReturnDistance())
		require.NoError(t, err)
		actual, err := parallel.NearestAll(queries, ReturnDistance())
		require.NoError(t, err)

		assert.Equal(t, expected, actual)
		assert.GreaterOrEqual(t, actual.Len(), len(queries))
	})
}
