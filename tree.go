// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"slices"
	"strings"
)

// Tree is a segment based search tree holding the routes of an [App]. Each node maps HTTP methods to the
// [Route] terminating at it, so the tree behaves as one search tree per method sharing a common structure.
//
// A Tree is not safe for concurrent mutation. Once every route is inserted, Lookup and the other read
// methods are safe for concurrent use by multiple goroutine.
type Tree struct {
	root      *node
	parser    Parser
	size      int
	maxParams int
}

// NewTree returns an empty Tree. The parser is used by [Tree.Has] to interpret patterns.
func NewTree(p Parser) *Tree {
	return &Tree{
		root:   newNode(),
		parser: p,
	}
}

// Insert walks the tree along the route segments, creating nodes as needed, and binds the route to the
// final node for its method. It returns a [*RouteConflictError] that Is [ErrConflictingParamNames] if a param
// is already registered under another name at the same position, or [ErrRouteExist] if the method is
// already bound at the final node.
func (t *Tree) Insert(route *Route) error {
	n := t.root
	params := 0
	for _, seg := range route.segments {
		switch seg.Kind {
		case StaticSegment:
			n = n.addStatic(seg.Value)
		case ParamSegment:
			params++
			if n.param == nil {
				n.param = newNode()
				n.paramName = seg.Value
			} else if n.paramName != seg.Value {
				existing := ":" + n.paramName
				if r := firstRoute(n.param); r != nil {
					existing = r.pattern
				}
				return &RouteConflictError{New: route, Existing: existing, Err: ErrConflictingParamNames}
			}
			n = n.param
		case WildcardSegment:
			params++
			if n.wildcard == nil {
				n.wildcard = newNode()
			}
			n = n.wildcard
		}
	}

	if existing, ok := n.routes[route.method]; ok {
		return &RouteConflictError{New: route, Existing: existing.pattern, Err: ErrRouteExist}
	}
	if n.routes == nil {
		n.routes = make(map[string]*Route)
	}
	n.routes[route.method] = route
	t.size++
	t.maxParams = max(t.maxParams, params)
	return nil
}

// Lookup returns the route registered for method that matches path, along with the captured params.
// The query string, if any, is ignored. At every level a static child is preferred over the param
// child, which is preferred over the wildcard child. The walk is greedy: once a static or param child
// is taken it is never reconsidered, even if the deeper walk fails.
func (t *Tree) Lookup(method, path string) (*Route, Params, bool) {
	params := make(Params, 0, t.maxParams)
	n := t.match(path, &params)
	if n == nil {
		return nil, nil, false
	}
	route, ok := n.routes[method]
	if !ok {
		return nil, nil, false
	}
	return route, params, true
}

// Methods returns the methods, in lexicographical order, for which a route matches path.
func (t *Tree) Methods(path string) []string {
	var params Params
	n := t.match(path, &params)
	if n == nil || !n.isLeaf() {
		return nil
	}
	return n.methods()
}

// Has reports whether a route is registered for method with exactly the given pattern.
func (t *Tree) Has(method, pattern string) bool {
	segments, err := t.parser.Parse(pattern)
	if err != nil {
		return false
	}

	n := t.root
	for _, seg := range segments {
		switch seg.Kind {
		case StaticSegment:
			n = n.staticChild(seg.Value)
		case ParamSegment:
			if n.paramName != seg.Value {
				return false
			}
			n = n.param
		case WildcardSegment:
			n = n.wildcard
		}
		if n == nil {
			return false
		}
	}
	_, ok := n.routes[method]
	return ok
}

// Walk calls fn for every route of the tree, depth first, static children in lexicographical order, then
// the param child, then the wildcard child. Walk stops as soon as fn returns false.
func (t *Tree) Walk(fn func(route *Route) bool) {
	walk(t.root, fn)
}

// Len returns the number of routes in the tree.
func (t *Tree) Len() int {
	return t.size
}

func (t *Tree) String() string {
	return t.root.String()
}

func (t *Tree) match(path string, params *Params) *node {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")

	n := t.root
	for path != "" {
		seg, rest, _ := strings.Cut(path, "/")

		if child := n.staticChild(seg); child != nil {
			n = child
			path = rest
			continue
		}

		if n.param != nil && seg != "" {
			*params = append(*params, Param{Key: n.paramName, Value: seg})
			n = n.param
			path = rest
			continue
		}

		if n.wildcard != nil {
			*params = append(*params, Param{Key: WildcardKey, Value: path})
			return n.wildcard
		}

		return nil
	}

	return n
}

func walk(n *node, fn func(route *Route) bool) bool {
	for _, method := range n.methods() {
		if !fn(n.routes[method]) {
			return false
		}
	}

	keys := make([]string, 0, len(n.statics))
	for k := range n.statics {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !walk(n.statics[k], fn) {
			return false
		}
	}
	if n.param != nil && !walk(n.param, fn) {
		return false
	}
	if n.wildcard != nil && !walk(n.wildcard, fn) {
		return false
	}
	return true
}

func firstRoute(n *node) *Route {
	var found *Route
	walk(n, func(route *Route) bool {
		found = route
		return false
	})
	return found
}
