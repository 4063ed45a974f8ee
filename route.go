// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"strconv"
	"strings"
)

// Route represents a processed route: the compiled middleware chain bound to a tree node for a method.
// A Route is immutable once its [App] is sealed.
type Route struct {
	method   string
	pattern  string
	segments []Segment
	own      Chain
	chain    Chain
}

func newRoute(method, pattern string, segments []Segment, mws []MiddlewareFunc) *Route {
	own := append(Chain(nil), mws...)
	return &Route{
		method:   method,
		pattern:  pattern,
		segments: segments,
		own:      own,
		chain:    own,
	}
}

// Handle runs the compiled chain of this route with the provided [Context].
func (r *Route) Handle(c *Context) error {
	return r.chain.Run(c)
}

// Method returns the HTTP method of this route.
func (r *Route) Method() string {
	return r.method
}

// Pattern returns the registered route pattern.
func (r *Route) Pattern() string {
	return r.pattern
}

// Segments returns a copy of the parsed segments of the route pattern.
func (r *Route) Segments() []Segment {
	return append([]Segment(nil), r.segments...)
}

// Len returns the number of middleware in the compiled chain, including inherited middleware.
func (r *Route) Len() int {
	return len(r.chain)
}

func (r *Route) String() string {
	sb := new(strings.Builder)
	sb.WriteString("method:")
	sb.WriteString(r.method)
	sb.WriteString(" pattern:")
	sb.WriteString(r.pattern)
	sb.WriteString(" middleware:")
	sb.WriteString(strconv.Itoa(len(r.chain)))
	return sb.String()
}

// compile sets the chain of the route to the inherited middleware followed by the route's own middleware.
func (r *Route) compile(inherited Chain) {
	if len(inherited) == 0 {
		r.chain = r.own
		return
	}
	chain := make(Chain, 0, len(inherited)+len(r.own))
	chain = append(chain, inherited...)
	r.chain = append(chain, r.own...)
}

// prefixMiddleware is a chain registered with UseMiddleware against a path prefix.
type prefixMiddleware struct {
	prefix   string
	segments []Segment
	chain    Chain
}

// covers reports whether the prefix is an ancestor of (or equal to) the given route segments.
// A wildcard prefix segment covers one or more remaining route segments.
func (m prefixMiddleware) covers(segments []Segment) bool {
	for i, seg := range m.segments {
		if seg.Kind == WildcardSegment {
			return i < len(segments)
		}
		if i >= len(segments) || !seg.equivalent(segments[i]) {
			return false
		}
	}
	return true
}
