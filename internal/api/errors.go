// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gogama/strtree"
)

// requestError is a malformed request: bad JSON, bad WKT, a bad
// parameter value.
type requestError struct {
	msg string
}

func (err *requestError) Error() string {
	return err.msg
}

func badRequest(format string, a ...interface{}) error {
	return &requestError{msg: fmt.Sprintf(format, a...)}
}

// statusOf maps an error to the HTTP status reported for it.
func statusOf(err error) int {
	var re *requestError
	switch {
	case errors.As(err, &re),
		errors.Is(err, strtree.ErrConfiguration),
		errors.Is(err, strtree.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, strtree.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
