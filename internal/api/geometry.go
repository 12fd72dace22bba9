// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

func parseGeometry(s string) (orb.Geometry, error) {
	if s == "" {
		return nil, badRequest("missing geom parameter")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, badRequest("invalid WKT geometry: %v", err)
	}
	return g, nil
}

// parseGeometries parses a batch. A nil entry stays a nil (missing)
// geometry.
func parseGeometries(ss []*string) ([]orb.Geometry, error) {
	gs := make([]orb.Geometry, len(ss))
	for i, s := range ss {
		if s == nil {
			continue
		}
		g, err := wkt.Unmarshal(*s)
		if err != nil {
			return nil, badRequest("invalid WKT geometry at position %d: %v", i, err)
		}
		gs[i] = g
	}
	return gs, nil
}

func parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, badRequest("invalid %s parameter %q", name, s)
	}
	return f, nil
}
