// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pairbuf

import (
	"fmt"
	"io"

	"github.com/gogama/strtree/littleendian"
	flatbuffers "github.com/google/flatbuffers/go"
)

// safeFlatBuffersInteraction runs a function that interacts with
// FlatBuffers, trapping any panic that occurs and converting it to a
// normal Go error.
//
// FlatBuffers' Go code doesn't use standard Go error handling, so any
// attempt to read corrupt FlatBuffers data may trigger a panic.
func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}

// writeSizePrefixed writes a finished, size-prefixed FlatBuffers
// buffer to an output stream, checking that the size prefix agrees
// with the buffer length.
func writeSizePrefixed(w io.Writer, buf []byte) (n int, err error) {
	var size uint32
	if size, err = prefixSize(buf); err != nil {
		return
	} else if uint64(size) > uint64(len(buf)-flatbuffers.SizeUint32) {
		err = fmtErr("FlatBuffers buffer is smaller than the size prefix (Len=%d, size=%d)", len(buf), size)
		return
	} else {
		n, err = w.Write(buf[0 : flatbuffers.SizeUint32+size])
		return
	}
}

func prefixSize(buf []byte) (uint32, error) {
	if len(buf) < flatbuffers.SizeUint32 {
		return 0, fmtErr("FlatBuffers buffer too short for size prefix (Len=%d)", len(buf))
	}
	return littleendian.Uint32(buf), nil
}
