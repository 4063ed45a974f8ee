// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

// SegmentKind classifies a route pattern segment.
type SegmentKind uint8

const (
	// StaticSegment matches exactly one path segment equal to its value.
	StaticSegment SegmentKind = iota
	// ParamSegment matches any single non-empty path segment and binds it to its name.
	ParamSegment
	// WildcardSegment matches one or more remaining path segments. It is always the last segment of a pattern.
	WildcardSegment
)

func (k SegmentKind) String() string {
	switch k {
	case StaticSegment:
		return "static"
	case ParamSegment:
		return "param"
	case WildcardSegment:
		return "wildcard"
	default:
		return "unknown"
	}
}

// WildcardKey is the name under which a wildcard capture is stored in [Params].
const WildcardKey = "*"

// Segment is a single matcher of a parsed route pattern.
type Segment struct {
	// Value is the literal text for a static segment, the parameter name for a param segment
	// and the wildcard marker for a wildcard segment.
	Value string
	Kind  SegmentKind
}

// String returns the segment in its pattern form.
func (s Segment) String() string {
	if s.Kind == ParamSegment {
		return ":" + s.Value
	}
	return s.Value
}

// equivalent reports whether s and o occupy the same tree position. Param names are ignored
// since two params at the same depth always share the tree node.
func (s Segment) equivalent(o Segment) bool {
	if s.Kind != o.Kind {
		return false
	}
	return s.Kind != StaticSegment || s.Value == o.Value
}
