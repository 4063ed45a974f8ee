// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRoute          = errors.New("invalid route")
	ErrDuplicateParamName    = errors.New("duplicate param name")
	ErrEmptyParamName        = errors.New("empty param name")
	ErrEmptySegment          = errors.New("empty segment")
	ErrWildcardNotLast       = errors.New("wildcard not last")
	ErrConflictingParamNames = errors.New("conflicting param names")
	ErrRouteExist            = errors.New("route already registered")
	ErrSealed                = errors.New("registration on sealed app")
	ErrInvalidConfig         = errors.New("invalid config")
	ErrNextCalledTwice       = errors.New("next called more than once")
	ErrInvalidRedirectCode   = errors.New("invalid redirect code")
)

// ParseError is returned when a route pattern cannot be parsed. It matches both [ErrInvalidRoute]
// and the sentinel describing the reason (e.g. [ErrWildcardNotLast]).
type ParseError struct {
	// Pattern is the pattern being parsed.
	Pattern string
	// Segment is the offending segment, if any.
	Segment string
	// Err is the reason of the failure.
	Err error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid route: ")
	sb.WriteString(e.Err.Error())
	if e.Segment != "" {
		sb.WriteString(" at segment '")
		sb.WriteString(e.Segment)
		sb.WriteByte('\'')
	}
	sb.WriteString(" in pattern ")
	sb.WriteString(e.Pattern)
	return sb.String()
}

// Unwrap returns [ErrInvalidRoute] and the reason of the failure.
func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidRoute, e.Err}
}

// RouteConflictError represents a conflict that occurred while inserting a route in the tree.
// Err is either [ErrRouteExist] or [ErrConflictingParamNames].
type RouteConflictError struct {
	// New is the route that was being registered when the conflict was detected.
	New *Route
	// Existing is the pattern of the previously registered route or param, if known.
	Existing string
	// Err is the reason of the conflict.
	Err error
}

func (e *RouteConflictError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	sb.WriteString(": new route [")
	sb.WriteString(e.New.method)
	sb.WriteString("] ")
	sb.WriteString(e.New.pattern)
	if e.Existing != "" {
		sb.WriteString(" conflicts with ")
		sb.WriteString(e.Existing)
	}
	return sb.String()
}

// Unwrap returns the sentinel value of the conflict.
func (e *RouteConflictError) Unwrap() error {
	return e.Err
}
