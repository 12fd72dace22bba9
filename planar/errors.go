// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import (
	"github.com/gogama/strtree"
)

func unsupportedPredicate(p strtree.Predicate) error {
	return &strtree.UnsupportedCapabilityError{Capability: "planar: predicate " + p.String()}
}
