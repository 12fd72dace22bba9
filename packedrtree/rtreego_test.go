// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/dhconnelly/rtreego"
	"github.com/gogama/strtree/packedrtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// item adapts a packed R-Tree Ref to rtreego's Spatial interface.
type item struct {
	ref  packedrtree.Ref
	rect rtreego.Rect
}

func (i *item) Bounds() rtreego.Rect {
	return i.rect
}

func newItem(t *testing.T, x, y, w, h float64, index int) *item {
	rect, err := rtreego.NewRect(rtreego.Point{x, y}, []float64{w, h})
	require.NoError(t, err)
	return &item{
		ref:  packedrtree.Ref{Box: packedrtree.Box{XMin: x, YMin: y, XMax: x + w, YMax: y + h}, Index: index},
		rect: rect,
	}
}

// TestAgainstRtreego checks that box searches agree with a dynamic
// R-Tree built by insertion over the same items.
func TestAgainstRtreego(t *testing.T) {
	for _, n := range []int{10, 500, 5000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			r := rand.New(rand.NewSource(int64(n)))
			dyn := rtreego.NewTree(2, 25, 50)
			refs := make([]packedrtree.Ref, n)
			for i := 0; i < n; i++ {
				it := newItem(t, r.Float64()*1000, r.Float64()*1000, r.Float64()*10+0.01, r.Float64()*10+0.01, i)
				dyn.Insert(it)
				refs[i] = it.ref
			}
			prt, err := packedrtree.New(refs, 10)
			require.NoError(t, err)

			for j := 0; j < 100; j++ {
				q := newItem(t, r.Float64()*1000, r.Float64()*1000, r.Float64()*50+0.01, r.Float64()*50+0.01, -1)
				var expected []int
				for _, s := range dyn.SearchIntersect(q.rect) {
					expected = append(expected, s.(*item).ref.Index)
				}
				sort.Ints(expected)

				actual := prt.Search(q.ref.Box)
				sort.Sort(actual)

				if len(expected) == 0 {
					assert.Empty(t, actual)
				} else {
					assert.Equal(t, expected, actual.Indices())
				}
			}
		})
	}
}
