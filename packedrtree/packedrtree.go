// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"math"
)

// A Ref is a single item within the PackedRTree. Each Ref consists of
// the caller's Index for the item plus a Box representing the bounding
// box of the item's geometry.
type Ref struct {
	Box

	// Index is the caller's index for the referenced item. It is not
	// interpreted by the tree, which merely hands it back in search
	// results. Indices need not be unique or contiguous.
	Index int
}

// String returns a summary description of the reference.
func (r Ref) String() string {
	return fmt.Sprintf("Ref{%s,Index:%d}", r.Box, r.Index)
}

// A node is an internal tree node. The Box is the extent of the entire
// subtree rooted at the node. The closed/open range [start, end)
// locates the node's children: for a node on the leaf level (level 0)
// the children are Refs within the packed reference list, otherwise
// they are nodes within the node list.
type node struct {
	Box
	start, end int
}

// A levelRange represents the range of node indices that comprise a
// level. Each levelRange is a closed/open node index pair [start, end)
// where start is the index (into PackedRTree's nodes list) of the first
// node in the level and end is the index that is one past the last node
// in the level.
type levelRange struct {
	start, end int
}

func validateParams(nodeSize uint16) {
	if nodeSize < 2 {
		textPanic("node size must be at least 2")
	}
}

// A ticket is a pending work item to be executed during a search
// loop.
type ticket struct {
	// nodeIndex is the index of the node to search.
	nodeIndex int
	// level is the R-Tree level that nodeIndex belongs to. Recall that
	// level 0 contains the leaf nodes.
	level int
}

// A ticketBag is a stack of pending work items to be executed during
// a depth-first search loop.
type ticketBag []ticket

func (tq *ticketBag) push(t ticket) {
	*tq = append(*tq, t)
}

func (tq *ticketBag) pop() ticket {
	old := *tq
	n := len(old)
	x := old[n-1]
	*tq = old[0 : n-1]
	return x
}

// PackedRTree is an immutable R-Tree bulk-loaded using the
// Sort-Tile-Recursive algorithm.
//
// All nodes live in a single slice ordered by level, leaf level first
// and root last, and refer to their children by index. The refs
// themselves are held in STR order so that each leaf's refs are
// contiguous.
type PackedRTree struct {
	// nodeSize is the maximum number of children per node.
	nodeSize int
	// refs is the packed reference list, in STR order.
	refs []Ref
	// nodes is the complete list of nodes in the tree, leaf level
	// first and the root last. It is empty if there are no refs.
	nodes []node
	// levels is the list of levelRange boundaries. The leaf nodes are
	// at levelRange 0 and the root node is at len(levels)-1.
	levels []levelRange
}

// New creates a new packed R-Tree from a list of references and a
// given maximum node size, packing it with the Sort-Tile-Recursive
// algorithm. Panics if node size is less than 2, and returns an error
// if any reference has an empty or NaN box.
//
// The reference list is copied and may be reused by the caller. An
// empty reference list yields an empty tree with no root, and a single
// reference yields a tree whose root is a leaf holding that reference.
func New(refs []Ref, nodeSize uint16) (*PackedRTree, error) {
	validateParams(nodeSize)

	for i := range refs {
		if refs[i].IsEmpty() || math.IsNaN(refs[i].midX()) || math.IsNaN(refs[i].midY()) {
			return nil, fmtErr("ref %d has invalid box %s", i, refs[i].Box)
		}
	}

	prt := &PackedRTree{
		nodeSize: int(nodeSize),
		refs:     make([]Ref, len(refs)),
	}
	copy(prt.refs, refs)
	if len(refs) == 0 {
		return prt, nil
	}

	// Pack the refs into leaf nodes.
	spans := tile(prt.refs, prt.nodeSize, refBox)
	level := make([]node, len(spans))
	for i, s := range spans {
		level[i] = node{Box: EmptyBox, start: s.start, end: s.end}
		for j := s.start; j < s.end; j++ {
			level[i].Expand(&prt.refs[j].Box)
		}
	}
	prt.nodes = make([]node, 0, 2*len(level))

	// Pack each level into the next one up until only the root
	// remains. Tiling sorts the level in place, so the level is only
	// copied into the node list once its final order is known.
	for len(level) > 1 {
		spans = tile(level, prt.nodeSize, nodeBox)
		base := len(prt.nodes)
		prt.nodes = append(prt.nodes, level...)
		prt.levels = append(prt.levels, levelRange{start: base, end: len(prt.nodes)})
		parents := make([]node, len(spans))
		for i, s := range spans {
			parents[i] = node{Box: EmptyBox, start: base + s.start, end: base + s.end}
			for j := parents[i].start; j < parents[i].end; j++ {
				parents[i].Expand(&prt.nodes[j].Box)
			}
		}
		level = parents
	}
	base := len(prt.nodes)
	prt.nodes = append(prt.nodes, level[0])
	prt.levels = append(prt.levels, levelRange{start: base, end: base + 1})

	return prt, nil
}

// Bounds returns the bounding box around all items referenced by the
// packed R-Tree. Returns EmptyBox if the tree is empty.
func (prt *PackedRTree) Bounds() Box {
	if len(prt.nodes) == 0 {
		return EmptyBox
	}
	return prt.nodes[len(prt.nodes)-1].Box
}

// NumRefs returns the number of references stored in the packed
// R-Tree.
func (prt *PackedRTree) NumRefs() int {
	return len(prt.refs)
}

// NumNodes returns the number of nodes, leaf and internal, in the
// packed R-Tree.
func (prt *PackedRTree) NumNodes() int {
	return len(prt.nodes)
}

// NodeSize returns the maximum child node count of the packed R-Tree.
func (prt *PackedRTree) NodeSize() uint16 {
	return uint16(prt.nodeSize)
}

// Height returns the number of node levels in the packed R-Tree. An
// empty tree has height 0 and a tree whose root is a leaf has height
// 1.
func (prt *PackedRTree) Height() int {
	return len(prt.levels)
}

// Refs returns a copy of the packed reference list, in the STR order
// used by the tree. Result.RefIndex values index into this list.
func (prt *PackedRTree) Refs() []Ref {
	refs := make([]Ref, len(prt.refs))
	copy(refs, prt.refs)
	return refs
}

// Root returns the root node of the tree, or false if the tree is
// empty.
func (prt *PackedRTree) Root() (Node, bool) {
	if len(prt.nodes) == 0 {
		return Node{}, false
	}
	return Node{prt: prt, index: len(prt.nodes) - 1, level: len(prt.levels) - 1}, true
}

// String returns a summary description of the packed R-Tree.
func (prt *PackedRTree) String() string {
	return fmt.Sprintf("PackedRTree{Bounds:%s,NumRefs:%d,NodeSize:%d,Height:%d}", prt.Bounds(), len(prt.refs), prt.nodeSize, len(prt.levels))
}

// Node is a read-only view of a single node in a PackedRTree.
type Node struct {
	prt   *PackedRTree
	index int
	level int
}

// Box returns the extent of the subtree rooted at the node.
func (n Node) Box() Box {
	return n.prt.nodes[n.index].Box
}

// IsLeaf reports whether the node's children are Refs rather than
// other nodes.
func (n Node) IsLeaf() bool {
	return n.level == 0
}

// Level returns the node's level within the tree. Leaves are at level
// 0 and the root is at level Height()-1.
func (n Node) Level() int {
	return n.level
}

// Children returns the node's child nodes. Returns nil for a leaf.
func (n Node) Children() []Node {
	if n.IsLeaf() {
		return nil
	}
	x := &n.prt.nodes[n.index]
	children := make([]Node, 0, x.end-x.start)
	for i := x.start; i < x.end; i++ {
		children = append(children, Node{prt: n.prt, index: i, level: n.level - 1})
	}
	return children
}

// Refs returns a copy of the references held by a leaf node. Returns
// nil for a non-leaf node.
func (n Node) Refs() []Ref {
	if !n.IsLeaf() {
		return nil
	}
	x := &n.prt.nodes[n.index]
	refs := make([]Ref, x.end-x.start)
	copy(refs, n.prt.refs[x.start:x.end])
	return refs
}

// Search searches the packed R-Tree for qualified matches whose
// bounding boxes intersect the query box. The order of the search
// results is the tree's depth-first traversal order. It is not
// sorted, but it is the same for every search of the same tree with
// the same box.
func (prt *PackedRTree) Search(b Box) Results {
	r := make(Results, 0)
	prt.Visit(b, func(x Result) bool {
		r = append(r, x)
		return true
	})
	return r
}

// Visit calls fn, in the same order Search would return them, for each
// reference whose bounding box intersects the query box. The search
// stops as soon as fn returns false.
func (prt *PackedRTree) Visit(b Box, fn func(Result) bool) {
	if len(prt.nodes) == 0 || b.IsEmpty() {
		return
	}

	q := make(ticketBag, 1, 2*len(prt.levels)*prt.nodeSize)
	q[0] = ticket{nodeIndex: len(prt.nodes) - 1, level: len(prt.levels) - 1}

	for len(q) > 0 {
		// Pop the next work ticket from the top of the stack.
		t := q.pop()
		n := &prt.nodes[t.nodeIndex]
		if !b.Intersects(&n.Box) {
			continue
		}
		// Search the node's children.
		if t.level == 0 {
			for pos := n.start; pos < n.end; pos++ {
				if b.Intersects(&prt.refs[pos].Box) && !fn(Result{Index: prt.refs[pos].Index, RefIndex: pos}) {
					return
				}
			}
		} else {
			// Push in reverse so the children are popped, and thus
			// visited, in order.
			for pos := n.end - 1; pos >= n.start; pos-- {
				q.push(ticket{nodeIndex: pos, level: t.level - 1})
			}
		}
	}
}
