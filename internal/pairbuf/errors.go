// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pairbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrMagic is returned when a stream does not begin with the
	// pairbuf magic number.
	ErrMagic = textErr("invalid magic number")
)

const packageName = "pairbuf: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}
