// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"math"

	"github.com/gogama/strtree/packedrtree"
)

// arena converts geometries into packed R-Tree references, one per
// geometry that is neither missing nor empty, in input order. Each
// Ref.Index is the geometry's position in geoms, so skipped geometries
// are simply never referenced.
func arena[G any](geoms []G, engine Engine[G]) ([]packedrtree.Ref, error) {
	refs := make([]packedrtree.Ref, 0, len(geoms))
	for i, g := range geoms {
		if engine.IsMissing(g) || engine.IsEmpty(g) {
			continue
		}
		b := engine.Envelope(g)
		if !validEnvelope(&b) {
			return nil, validationErr("geometry %d has invalid envelope %s", i, b)
		}
		refs = append(refs, packedrtree.Ref{Box: b, Index: i})
	}
	return refs, nil
}

// validEnvelope reports whether b is non-empty with finite bounds.
func validEnvelope(b *packedrtree.Box) bool {
	return !b.IsEmpty() &&
		!math.IsInf(b.XMin, 0) && !math.IsInf(b.YMin, 0) &&
		!math.IsInf(b.XMax, 0) && !math.IsInf(b.YMax, 0)
}
