// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package pairbuf is the binary encoding of strtree.Pairs served by
// strtreed to clients that accept application/x-flatbuffers.
//
// An encoded stream is an 8-byte magic number followed by one
// size-prefixed FlatBuffers Pairs table (see pairs.fbs). Indices are
// stored as uint32 and distances as float64.
package pairbuf

import (
	"io"
	"math"

	"github.com/gogama/strtree"
	flatbuffers "github.com/google/flatbuffers/go"
)

// ContentType is the media type of an encoded stream.
const ContentType = "application/x-flatbuffers"

// Write encodes p to w. It returns the number of bytes written.
//
// The Query and Tree slices of p must have equal length, as must
// Distance if it is not nil. A negative index, or one that does not
// fit in a uint32, is an error.
func Write(w io.Writer, p strtree.Pairs) (n int, err error) {
	if len(p.Tree) != len(p.Query) {
		err = fmtErr("pairs have %d query indices but %d tree indices", len(p.Query), len(p.Tree))
		return
	} else if p.Distance != nil && len(p.Distance) != len(p.Query) {
		err = fmtErr("pairs have %d query indices but %d distances", len(p.Query), len(p.Distance))
		return
	}

	var buf []byte
	if buf, err = build(p); err != nil {
		return
	}

	m, err := w.Write(magic[:])
	n += m
	if err != nil {
		err = wrapErr("failed to write magic number", err)
		return
	}

	m, err = writeSizePrefixed(w, buf)
	n += m
	if err != nil {
		err = wrapErr("failed to write pairs table", err)
	}
	return
}

func build(p strtree.Pairs) ([]byte, error) {
	b := flatbuffers.NewBuilder(64 + 8*len(p.Query) + 8*len(p.Distance))

	query, err := uint32Vector(b, "query", p.Query, PairsStartQueryVector)
	if err != nil {
		return nil, err
	}
	tree, err := uint32Vector(b, "tree", p.Tree, PairsStartTreeVector)
	if err != nil {
		return nil, err
	}
	var distance flatbuffers.UOffsetT
	if p.Distance != nil {
		PairsStartDistanceVector(b, len(p.Distance))
		for i := len(p.Distance) - 1; i >= 0; i-- {
			b.PrependFloat64(p.Distance[i])
		}
		distance = b.EndVector(len(p.Distance))
	}

	PairsStart(b)
	PairsAddQuery(b, query)
	PairsAddTree(b, tree)
	if p.Distance != nil {
		PairsAddDistance(b, distance)
	}
	b.FinishSizePrefixed(PairsEnd(b))

	return b.FinishedBytes(), nil
}

func uint32Vector(b *flatbuffers.Builder, name string, values []int, start func(*flatbuffers.Builder, int) flatbuffers.UOffsetT) (flatbuffers.UOffsetT, error) {
	for i, v := range values {
		if v < 0 || uint64(v) > math.MaxUint32 {
			return 0, fmtErr("%s index %d at position %d does not fit in uint32", name, v, i)
		}
	}
	start(b, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		b.PrependUint32(uint32(values[i]))
	}
	return b.EndVector(len(values)), nil
}

// Read decodes one encoded stream from r.
//
// Returns ErrMagic if r does not begin with the pairbuf magic number.
// Distance in the result is nil exactly when the encoded table has no
// distance vector.
func Read(r io.Reader) (strtree.Pairs, error) {
	v, err := Magic(r)
	if err == ErrMagic {
		return strtree.Pairs{}, err
	} else if err != nil {
		return strtree.Pairs{}, wrapErr("failed to read magic number", err)
	}
	if v.Major < MinMajorVersion || v.Major > MaxMajorVersion {
		return strtree.Pairs{}, fmtErr("unsupported major version %d (supported: %d to %d)", v.Major, MinMajorVersion, MaxMajorVersion)
	}

	prefix := make([]byte, flatbuffers.SizeUint32)
	if _, err = io.ReadFull(r, prefix); err != nil {
		return strtree.Pairs{}, wrapErr("failed to read size prefix", err)
	}
	size, err := prefixSize(prefix)
	if err != nil {
		return strtree.Pairs{}, err
	} else if size > tableMaxLen {
		return strtree.Pairs{}, fmtErr("pairs table size %d exceeds limit %d", size, tableMaxLen)
	}
	buf := make([]byte, flatbuffers.SizeUint32+int(size))
	copy(buf, prefix)
	if _, err = io.ReadFull(r, buf[flatbuffers.SizeUint32:]); err != nil {
		return strtree.Pairs{}, wrapErr("failed to read pairs table", err)
	}

	var p strtree.Pairs
	err = safeFlatBuffersInteraction(func() error {
		return decode(GetSizePrefixedRootAsPairs(buf, 0), len(buf), &p)
	})
	if err != nil {
		return strtree.Pairs{}, wrapErr("failed to decode pairs table", err)
	}
	return p, nil
}

func decode(t *Pairs, bufLen int, p *strtree.Pairs) error {
	n := t.QueryLength()
	if n > bufLen/4 {
		return fmtErr("query vector length %d exceeds buffer length %d", n, bufLen)
	} else if m := t.TreeLength(); m != n {
		return fmtErr("query vector has %d elements but tree vector has %d", n, m)
	}
	p.Query = make([]int, n)
	p.Tree = make([]int, n)
	for i := 0; i < n; i++ {
		p.Query[i] = int(t.Query(i))
		p.Tree[i] = int(t.Tree(i))
	}
	if t.HasDistance() {
		if m := t.DistanceLength(); m != n {
			return fmtErr("query vector has %d elements but distance vector has %d", n, m)
		}
		p.Distance = make([]float64, n)
		for i := 0; i < n; i++ {
			p.Distance[i] = t.Distance(i)
		}
	}
	return nil
}
