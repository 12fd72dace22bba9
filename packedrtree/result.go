// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import "fmt"

// Result is a single index search result. A Result's fields can be used
// to locate the corresponding item in the caller's data, or in the
// PackedRTree's own packed reference list.
type Result struct {
	// Index is the caller's index for the item, copied from Ref.Index.
	Index int
	// RefIndex is the position of the item's Ref in the packed,
	// STR-sorted reference list held by the PackedRTree.
	RefIndex int
}

// Results is a slice of Result structures which implements
// sort.Interface. The sort.Sort function will sort Results in
// ascending order of Result.Index.
type Results []Result

// Len returns the length of the slice. It implements the corresponding
// method of sort.Interface.
func (rs Results) Len() int {
	return len(rs)
}

// Less establishes an absolute ordering by ascending order of
// Result.Index. It implements the corresponding method of
// sort.Interface.
func (rs Results) Less(i, j int) bool {
	return rs[i].Index < rs[j].Index
}

// Swap swaps two elements of the slice. It implements the corresponding
// method of sort.Interface.
func (rs Results) Swap(i, j int) {
	rs[i], rs[j] = rs[j], rs[i]
}

// Indices returns the caller indices of the results, in result order.
func (rs Results) Indices() []int {
	indices := make([]int, len(rs))
	for i := range rs {
		indices[i] = rs[i].Index
	}
	return indices
}

// Neighbor is a single nearest-neighbor search result.
type Neighbor struct {
	Result
	// Distance is the exact distance from the query to the item, as
	// reported by the DistanceFunc passed to Nearest.
	Distance float64
}

// String returns a compact description of the neighbor.
func (n Neighbor) String() string {
	return fmt.Sprintf("{Index:%d RefIndex:%d Distance:%.8g}", n.Index, n.RefIndex, n.Distance)
}

// Neighbors is a list of nearest-neighbor search results.
type Neighbors []Neighbor
