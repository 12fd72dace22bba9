// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pairbuf

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Pairs is the FlatBuffers table holding a list of (query, tree)
// index pairs and, optionally, their distances. See pairs.fbs.
type Pairs struct {
	_tab flatbuffers.Table
}

// GetSizePrefixedRootAsPairs returns the size-prefixed root Pairs
// table at offset within buf.
func GetSizePrefixedRootAsPairs(buf []byte, offset flatbuffers.UOffsetT) *Pairs {
	n := flatbuffers.GetUOffsetT(buf[offset+flatbuffers.SizeUint32:])
	x := &Pairs{}
	x.Init(buf, n+offset+flatbuffers.SizeUint32)
	return x
}

func (rcv *Pairs) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *Pairs) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *Pairs) Query(j int) uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetUint32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *Pairs) QueryLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Pairs) Tree(j int) uint32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetUint32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (rcv *Pairs) TreeLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

func (rcv *Pairs) Distance(j int) float64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		a := rcv._tab.Vector(o)
		return rcv._tab.GetFloat64(a + flatbuffers.UOffsetT(j*8))
	}
	return 0
}

func (rcv *Pairs) DistanceLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

// HasDistance reports whether the distance vector is present, even if
// it is empty.
func (rcv *Pairs) HasDistance() bool {
	return rcv._tab.Offset(8) != 0
}

func PairsStart(builder *flatbuffers.Builder) {
	builder.StartObject(3)
}

func PairsAddQuery(builder *flatbuffers.Builder, query flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, query, 0)
}

func PairsStartQueryVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func PairsAddTree(builder *flatbuffers.Builder, tree flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(1, tree, 0)
}

func PairsStartTreeVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func PairsAddDistance(builder *flatbuffers.Builder, distance flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(2, distance, 0)
}

func PairsStartDistanceVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(8, numElems, 8)
}

func PairsEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
