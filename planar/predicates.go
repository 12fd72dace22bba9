// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package planar

import "github.com/gogama/strtree"

func (m *matrix) intersects() bool {
	return m[interior][interior] != empty || m[interior][boundary] != empty ||
		m[boundary][interior] != empty || m[boundary][boundary] != empty
}

// contains is the pattern T*****FF*.
func (m *matrix) contains() bool {
	return m[interior][interior] != empty && m[exterior][interior] == empty && m[exterior][boundary] == empty
}

// within is the pattern T*F**F***.
func (m *matrix) within() bool {
	return m[interior][interior] != empty && m[interior][exterior] == empty && m[boundary][exterior] == empty
}

// covers is any of T*****FF*, *T****FF*, ***T**FF* or ****T*FF*.
func (m *matrix) covers() bool {
	return m.intersects() && m[exterior][interior] == empty && m[exterior][boundary] == empty
}

// coveredBy is any of T*F**F***, *TF**F***, **FT*F*** or **F*TF***.
func (m *matrix) coveredBy() bool {
	return m.intersects() && m[interior][exterior] == empty && m[boundary][exterior] == empty
}

// containsProperly is the pattern T**FF*FF*.
func (m *matrix) containsProperly() bool {
	return m[interior][interior] != empty &&
		m[boundary][interior] == empty && m[boundary][boundary] == empty &&
		m[exterior][interior] == empty && m[exterior][boundary] == empty
}

// touches is any of FT*******, F**T***** or F***T****.
func (m *matrix) touches(da, db int) bool {
	if da == 0 && db == 0 {
		return false
	}
	return m[interior][interior] == empty &&
		(m[interior][boundary] != empty || m[boundary][interior] != empty || m[boundary][boundary] != empty)
}

// overlaps is T*T***T** for two areas or two point sets, and
// 1*T***T** for two line sets.
func (m *matrix) overlaps(da, db int) bool {
	if da != db {
		return false
	}
	ii := m[interior][interior]
	if da == 1 {
		return ii == 1 && m[interior][exterior] != empty && m[exterior][interior] != empty
	}
	return ii != empty && m[interior][exterior] != empty && m[exterior][interior] != empty
}

// crosses is T*T****** when the first geometry has the lower
// dimension, T*****T** when it has the higher, and 0******** for two
// line sets.
func (m *matrix) crosses(da, db int) bool {
	switch {
	case da == 1 && db == 1:
		return m[interior][interior] == 0
	case da < db && (da == 0 || da == 1) && db >= 1:
		return m[interior][interior] != empty && m[interior][exterior] != empty
	case da > db && (db == 0 || db == 1) && da >= 1:
		return m[interior][interior] != empty && m[exterior][interior] != empty
	default:
		return false
	}
}

// evaluate decides predicate p between shapes a and b. Predicates on
// an empty shape are always false.
func evaluate(p strtree.Predicate, a, b *shape) (bool, error) {
	if !p.Binary() {
		return false, unsupportedPredicate(p)
	}
	if a.isEmpty() || b.isEmpty() {
		return false, nil
	}
	if !a.box.Intersects(&b.box) {
		return false, nil
	}
	switch p {
	case strtree.Within, strtree.Contains, strtree.Covers, strtree.CoveredBy, strtree.ContainsProperly:
		if !boxesMayContain(p, a, b) {
			return false, nil
		}
	}

	m := relate(a, b)
	da, db := a.dim(), b.dim()
	switch p {
	case strtree.Intersects:
		return m.intersects(), nil
	case strtree.Within:
		return m.within(), nil
	case strtree.Contains:
		return m.contains(), nil
	case strtree.Overlaps:
		return m.overlaps(da, db), nil
	case strtree.Crosses:
		return m.crosses(da, db), nil
	case strtree.Touches:
		return m.touches(da, db), nil
	case strtree.Covers:
		return m.covers(), nil
	case strtree.CoveredBy:
		return m.coveredBy(), nil
	default: // ContainsProperly
		return m.containsProperly(), nil
	}
}

// boxesMayContain is a quick envelope check ruling out containment
// predicates: a geometry can only contain or cover another whose
// envelope lies within its own.
func boxesMayContain(p strtree.Predicate, a, b *shape) bool {
	switch p {
	case strtree.Within, strtree.CoveredBy:
		a, b = b, a
	}
	return a.box.XMin <= b.box.XMin && a.box.YMin <= b.box.YMin &&
		b.box.XMax <= a.box.XMax && b.box.YMax <= a.box.YMax
}
