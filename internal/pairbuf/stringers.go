// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pairbuf

import (
	"fmt"
	"strings"
)

// String returns a string summarizing the Pairs table. The returned
// value is a summary and not meant to be exhaustive.
func (rcv *Pairs) String() string {
	var b strings.Builder
	b.WriteString("Pairs{")
	if err := safeFlatBuffersInteraction(func() error {
		stringInt64(&b, "NumQuery", int64(rcv.QueryLength()))
		stringInt64(&b, ",NumTree", int64(rcv.TreeLength()))
		if rcv.HasDistance() {
			stringInt64(&b, ",NumDistance", int64(rcv.DistanceLength()))
		} else {
			stringStr(&b, ",Distance", "<nil>")
		}
		return nil
	}); err != nil {
		return "error: " + err.Error()
	}
	b.WriteByte('}')
	return b.String()
}

// String returns the version in the form Major.Patch.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Patch)
}

func stringKey(b *strings.Builder, key string) {
	b.WriteString(key)
	b.WriteByte(':')
}

func stringStr(b *strings.Builder, key string, value string) {
	stringKey(b, key)
	b.WriteString(value)
}

func stringInt64(b *strings.Builder, key string, value int64) {
	stringKey(b, key)
	fmt.Fprintf(b, "%d", value)
}
