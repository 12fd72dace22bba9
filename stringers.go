// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"strconv"
	"strings"
)

// String returns the predicate's name, as accepted by ParsePredicate.
func (p Predicate) String() string {
	if p.Valid() {
		return predicateNames[p]
	}
	return "Predicate(" + strconv.Itoa(int(p)) + ")"
}

// String returns a compact description of the pairs in the form
// Pairs{Query:[...],Tree:[...]}, with a Distance list appended when
// distances are present.
func (p Pairs) String() string {
	var b strings.Builder
	b.WriteString("Pairs{")
	stringInts(&b, "Query", p.Query)
	stringInts(&b, ",Tree", p.Tree)
	if p.Distance != nil {
		b.WriteString(",Distance:[")
		for i, d := range p.Distance {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(d, 'g', 8, 64))
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
	return b.String()
}

func stringInts(b *strings.Builder, key string, values []int) {
	b.WriteString(key)
	b.WriteString(":[")
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
}
