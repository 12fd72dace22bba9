// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError under
	// errors.Is.
	ErrConfiguration = textErr("configuration error")
	// ErrValidation matches every *ValidationError under errors.Is.
	ErrValidation = textErr("validation error")
	// ErrUnsupported matches every *UnsupportedCapabilityError under
	// errors.Is.
	ErrUnsupported = textErr("unsupported capability")
)

const (
	errDistanceRequired  = "distance parameter must be provided for dwithin predicate"
	errDistanceBroadcast = "could not broadcast distance to match geometry"
	errDistanceNotUsed   = "distance parameter is only valid for the dwithin predicate"
)

// A ConfigurationError reports an invalid parameter passed to New, to
// a query, or to a nearest-neighbor search: a bad node capacity, a
// missing or malformed dwithin distance, an invalid max distance, and
// the like. Configuration errors are never transient.
type ConfigurationError struct {
	Msg string
}

func (err *ConfigurationError) Error() string {
	return packageName + err.Msg
}

// Is reports whether target is ErrConfiguration.
func (err *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// A ValidationError reports an input geometry for which the requested
// operation is undefined, such as a missing or empty geometry passed
// to Nearest.
type ValidationError struct {
	Msg string
}

func (err *ValidationError) Error() string {
	return packageName + err.Msg
}

// Is reports whether target is ErrValidation.
func (err *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// An UnsupportedCapabilityError reports that the geometry engine lacks
// a capability an operation needs, for example a query with an exact
// predicate against an engine that is not a PredicateEvaluator.
//
// Engines may also return it themselves, e.g. for a geometry type they
// do not handle.
type UnsupportedCapabilityError struct {
	// Capability names what is missing.
	Capability string
}

func (err *UnsupportedCapabilityError) Error() string {
	return packageName + "unsupported capability: " + err.Capability
}

// Is reports whether target is ErrUnsupported.
func (err *UnsupportedCapabilityError) Is(target error) bool {
	return target == ErrUnsupported
}

const packageName = "strtree: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func configErr(format string, a ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, a...)}
}

func validationErr(format string, a ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, a...)}
}

func textPanic(text string) {
	panic(packageName + text)
}
