// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import (
	"slices"
	"strings"
)

type node struct {
	// Static children keyed by their exact segment text.
	statics map[string]*node

	// The single parameter child and the name it was registered with.
	param     *node
	paramName string

	// Wildcard child. It is always a leaf.
	wildcard *node

	// Routes terminating at this node, keyed by HTTP method.
	routes map[string]*Route
}

func newNode() *node {
	return &node{}
}

func (n *node) staticChild(key string) *node {
	if n.statics == nil {
		return nil
	}
	return n.statics[key]
}

func (n *node) addStatic(key string) *node {
	if n.statics == nil {
		n.statics = make(map[string]*node)
	}
	child, ok := n.statics[key]
	if !ok {
		child = newNode()
		n.statics[key] = child
	}
	return child
}

func (n *node) isLeaf() bool {
	return len(n.routes) > 0
}

// methods returns the methods bound at this node in lexicographical order.
func (n *node) methods() []string {
	methods := make([]string, 0, len(n.routes))
	for method := range n.routes {
		methods = append(methods, method)
	}
	slices.Sort(methods)
	return methods
}

func (n *node) String() string {
	sb := strings.Builder{}
	n.string(&sb, "root", 0)
	return sb.String()
}

func (n *node) string(sb *strings.Builder, key string, space int) {
	sb.WriteString(strings.Repeat(" ", space))
	sb.WriteString(key)
	if n.isLeaf() {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(n.methods(), ", "))
		sb.WriteByte(']')
	}
	sb.WriteByte('\n')

	keys := make([]string, 0, len(n.statics))
	for k := range n.statics {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		n.statics[k].string(sb, k, space+2)
	}
	if n.param != nil {
		n.param.string(sb, ":"+n.paramName, space+2)
	}
	if n.wildcard != nil {
		n.wildcard.string(sb, WildcardKey, space+2)
	}
}
