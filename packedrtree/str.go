// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"
	"sort"
)

// A span is a closed/open range [start, end) of items, all of which
// become children of the same parent node.
type span struct {
	start, end int
}

// tile sorts one level of items into Sort-Tile-Recursive order and
// returns the spans of consecutive items that each form one parent
// node. Items is sorted in place.
//
// With n items and a node size of m, the level is expected to need
// ceil(n/m) parents. The items are sorted by the X-coordinate of their
// box centers and cut into ceil(sqrt(ceil(n/m))) vertical slices of
// ceil(n/sliceCount) items each (the last slice may be smaller). Each
// slice is then sorted by the Y-coordinate of box centers and cut into
// runs of at most m items. Because a slice's last run can be short,
// the level may produce a few more parents than ceil(n/m).
//
// Both sorts are stable, so items with equal centers keep their input
// order. This makes the tree shape a pure function of the input order
// and the node size.
func tile[T any](items []T, nodeSize int, box func(*T) *Box) []span {
	n := len(items)
	if n == 0 {
		return nil
	}
	parentCount := ceilDiv(n, nodeSize)
	sliceCount := int(math.Ceil(math.Sqrt(float64(parentCount))))
	sliceCapacity := ceilDiv(n, sliceCount)

	sort.SliceStable(items, func(i, j int) bool {
		return box(&items[i]).midX() < box(&items[j]).midX()
	})

	spans := make([]span, 0, parentCount+sliceCount)
	for start := 0; start < n; start += sliceCapacity {
		end := start + sliceCapacity
		if end > n {
			end = n
		}
		slice := items[start:end]
		sort.SliceStable(slice, func(i, j int) bool {
			return box(&slice[i]).midY() < box(&slice[j]).midY()
		})
		for i := start; i < end; i += nodeSize {
			j := i + nodeSize
			if j > end {
				j = end
			}
			spans = append(spans, span{start: i, end: j})
		}
	}
	return spans
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func refBox(r *Ref) *Box {
	return &r.Box
}

func nodeBox(n *node) *Box {
	return &n.Box
}
