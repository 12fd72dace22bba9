// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"

	"github.com/tidwall/tinyqueue"
)

// A DistanceFunc computes the exact distance from the query to the
// item referenced by ref. The distance must be no less than the
// distance between the query box and ref's box, otherwise nearest
// neighbors may be missed.
//
// Returning the Stop sentinel ends the search early without error.
type DistanceFunc func(ref Ref) (float64, error)

// A queueItem is a pending node or ref in a best-first search, keyed
// by the lower bound of the distance from the query to anything in it.
type queueItem struct {
	dist  float64
	index int
	level int
	isRef bool
}

func (item *queueItem) Less(b tinyqueue.Item) bool {
	other := b.(*queueItem)
	if item.dist != other.dist {
		return item.dist < other.dist
	}
	// At equal lower bounds, settle refs first so that a search can
	// stop as soon as possible.
	return item.isRef && !other.isRef
}

// Nearest performs a best-first search for the references nearest to
// the query box b, as measured by dist.
//
// Nodes and refs are expanded in ascending order of the distance from
// b to their boxes, which is a lower bound on the exact distance, and
// anything whose lower bound exceeds the best exact distance found so
// far is pruned. The search therefore never misses a true nearest
// neighbor, and only calls dist for refs that could still be one.
//
// If all is false, at most one Neighbor is returned. When several refs
// are tied for the minimum distance, which one is returned depends on
// the traversal order: it is deterministic for a given tree but should
// not otherwise be relied on. If all is true, every ref tied for the
// minimum distance is returned, in the order visited.
//
// maxDistance bounds the search: refs whose box is farther than
// maxDistance from b, or whose exact distance exceeds maxDistance, are
// never returned. Pass math.Inf(1) for an unbounded search. Panics if
// maxDistance is negative or NaN.
//
// Returns no neighbors if the tree is empty or b is empty. If dist
// returns an error other than Stop, the search is abandoned and the
// error is returned wrapped.
func (prt *PackedRTree) Nearest(b Box, maxDistance float64, all bool, dist DistanceFunc) (Neighbors, error) {
	if !(maxDistance >= 0) {
		fmtPanic("max distance must be non-negative, got %v", maxDistance)
	} else if dist == nil {
		textPanic("nil distance func")
	}
	if len(prt.nodes) == 0 || b.IsEmpty() {
		return nil, nil
	}

	cutoff := maxDistance
	root := len(prt.nodes) - 1
	d := b.Distance(&prt.nodes[root].Box)
	if beyond(d, cutoff) {
		return nil, nil
	}

	var r Neighbors
	q := tinyqueue.New(nil)
	q.Push(&queueItem{dist: d, index: root, level: len(prt.levels) - 1})

	for q.Len() > 0 {
		item := q.Pop().(*queueItem)
		// Everything left in the queue is at least as far away as
		// this item, so nothing left can beat (or, if only one result
		// is wanted, even tie) the current cutoff.
		if beyond(item.dist, cutoff) || (!all && len(r) > 0 && item.dist >= cutoff) {
			break
		}

		if item.isRef {
			ref := &prt.refs[item.index]
			d, err := dist(*ref)
			if err == Stop {
				return r, nil
			} else if err != nil {
				return nil, wrapErr("distance to ref with index %d", err, ref.Index)
			}
			switch {
			case !(d <= cutoff):
				continue
			case len(r) > 0 && d < r[0].Distance:
				r = r[:0]
			case len(r) > 0 && !all:
				continue
			}
			r = append(r, Neighbor{Result: Result{Index: ref.Index, RefIndex: item.index}, Distance: d})
			cutoff = d
			continue
		}

		n := &prt.nodes[item.index]
		for pos := n.start; pos < n.end; pos++ {
			var child *queueItem
			if item.level == 0 {
				child = &queueItem{dist: b.Distance(&prt.refs[pos].Box), index: pos, isRef: true}
			} else {
				child = &queueItem{dist: b.Distance(&prt.nodes[pos].Box), index: pos, level: item.level - 1}
			}
			if !beyond(child.dist, cutoff) {
				q.Push(child)
			}
		}
	}

	return r, nil
}

// boundSlack is the relative amount by which a box lower bound may
// exceed the cutoff before it is pruned. Box bounds and exact distances
// are computed by different code and can disagree in the last ulp.
const boundSlack = 1e-12

// beyond reports whether a box at lower bound lb can be pruned against
// cutoff. Only the exact distance decides whether a ref is returned.
func beyond(lb, cutoff float64) bool {
	return lb > cutoff+cutoff*boundSlack
}

// Unbounded is the maxDistance to pass to Nearest for a search that
// is not limited by distance.
var Unbounded = math.Inf(1)
