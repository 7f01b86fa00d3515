// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trie/blob/master/LICENSE.txt.

package trie

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRoute    = errors.New("invalid route")
	ErrEmptyPath       = errors.New("empty path")
	ErrCatchallNotLast = errors.New("catchall must be the last path component")
	ErrParamConflict   = errors.New("parameter name conflict")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrNoMoreParams    = errors.New("no more parameters")
	ErrParamMismatch   = errors.New("parameter mismatch")
	ErrParamInvalid    = errors.New("invalid parameter value")
	ErrClosed          = errors.New("router closed")
)

// ParamConflictError is returned when two routes share a wildcard position but bind different
// parameter names to it.
type ParamConflictError struct {
	// Pattern is the route that was being registered when the conflict was detected.
	Pattern string
	// Existing is the parameter name already bound at this position.
	Existing string
	// New is the parameter name requested by Pattern.
	New string
}

func (e *ParamConflictError) Error() string {
	var sb strings.Builder
	sb.WriteString("parameter name conflict: new route ")
	sb.WriteString(e.Pattern)
	sb.WriteString(" binds ':")
	sb.WriteString(e.New)
	sb.WriteString("' where ':")
	sb.WriteString(e.Existing)
	sb.WriteString("' is already registered")
	return sb.String()
}

// Unwrap returns the sentinel value [ErrParamConflict].
func (e *ParamConflictError) Unwrap() error {
	return ErrParamConflict
}

// ParamMismatchError is returned by [Params.Next] when the next stored parameter is not the one
// the caller expected.
type ParamMismatchError struct {
	// Expected is the parameter name requested by the caller.
	Expected string
	// Got is the name of the next stored parameter.
	Got string
}

func (e *ParamMismatchError) Error() string {
	return "parameter mismatch: expected '" + e.Expected + "' but next parameter is '" + e.Got + "'"
}

// Unwrap returns the sentinel value [ErrParamMismatch].
func (e *ParamMismatchError) Unwrap() error {
	return ErrParamMismatch
}
