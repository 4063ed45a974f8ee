// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/thrust/blob/master/LICENSE.txt.

package thrust

import "strings"

const (
	paramDelim byte = ':'

	// DefaultWildcardMarker is the segment recognized as a wildcard when no other marker is configured.
	DefaultWildcardMarker = "*"
)

// Parser splits route patterns into segments. The zero value uses [DefaultWildcardMarker].
type Parser struct {
	// WildcardMarker is the segment text parsed as a wildcard.
	WildcardMarker string
}

// ParsePattern parses pattern with the default wildcard marker. See [Parser.Parse].
func ParsePattern(pattern string) ([]Segment, error) {
	return Parser{}.Parse(pattern)
}

// Parse splits pattern on '/' and classifies every segment. Leading and trailing slashes are ignored,
// so "/" and "" both denote the root and yield no segment. It returns a [*ParseError] that Is
// [ErrInvalidRoute] and one of [ErrEmptySegment], [ErrEmptyParamName], [ErrDuplicateParamName]
// or [ErrWildcardNotLast].
func (p Parser) Parse(pattern string) ([]Segment, error) {
	marker := p.WildcardMarker
	if marker == "" {
		marker = DefaultWildcardMarker
	}

	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return []Segment{}, nil
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		switch {
		case part == "":
			return nil, &ParseError{Pattern: pattern, Err: ErrEmptySegment}
		case part == marker:
			if i != len(parts)-1 {
				return nil, &ParseError{Pattern: pattern, Segment: part, Err: ErrWildcardNotLast}
			}
			segments = append(segments, Segment{Kind: WildcardSegment, Value: marker})
		case part[0] == paramDelim:
			name := part[1:]
			if name == "" {
				return nil, &ParseError{Pattern: pattern, Segment: part, Err: ErrEmptyParamName}
			}
			for _, s := range segments {
				if s.Kind == ParamSegment && s.Value == name {
					return nil, &ParseError{Pattern: pattern, Segment: part, Err: ErrDuplicateParamName}
				}
			}
			segments = append(segments, Segment{Kind: ParamSegment, Value: name})
		default:
			segments = append(segments, Segment{Kind: StaticSegment, Value: part})
		}
	}

	return segments, nil
}
