// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pairbuf

import (
	"io"
)

const (
	// magicLen is the length of the pairbuf magic number in bytes.
	magicLen = 8
	// MinMajorVersion is the minimum major format version this
	// package can read.
	MinMajorVersion = 0x01
	// MaxMajorVersion is the maximum major format version this
	// package can read.
	MaxMajorVersion = 0x01
	// tableMaxLen is the largest Pairs table this package will read.
	// It keeps a corrupt size prefix from causing a huge allocation.
	tableMaxLen = 256 * 1024 * 1024
)

// magic contains the pairbuf magic number.
//
// The fourth byte is the major version of data written by this
// package, and the last byte is the patch version.
var magic = [magicLen]byte{0x73, 0x74, 0x72, 0x01, 0x70, 0x72, 0x73, 0x00}

// Version is a version of the pairbuf format.
type Version struct {
	// Major is the major version. Readers reject major versions they
	// don't know.
	Major uint8
	// Patch is the patch version.
	Patch uint8
}

// Magic reads the pairbuf magic number from a stream and if it is
// valid, returns the format version. It does not read beyond the
// magic number.
func Magic(r io.Reader) (Version, error) {
	m := make([]byte, magicLen)
	_, err := io.ReadFull(r, m)
	if err != nil {
		return Version{}, err
	}
	if m[0] == magic[0] &&
		m[1] == magic[1] &&
		m[2] == magic[2] &&
		m[4] == magic[4] &&
		m[5] == magic[5] &&
		m[6] == magic[6] {
		return Version{m[3], m[7]}, nil
	}
	return Version{}, ErrMagic
}
