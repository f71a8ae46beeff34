package pattern

import (
	"fmt"
	"strings"

	"github.com/slopjs/slop"
)

// Params maps the named parameters of a [Pattern] to the concrete path
// segments they matched.
type Params map[string]string

// A Pattern is a parsed path template composed of literal segments and
// named-parameter segments, e.g., /users/:id/posts.
//
// A Pattern is immutable once parsed and safe for concurrent use.
type Pattern struct {
	raw      string
	segments []segment
	literal  bool
}

type segment struct {
	// value is the literal text of the segment, or the parameter name
	// (without the leading ":") when param is true.
	value string
	param bool
}

// Parse splits raw on "/" into a sequence of segments.
// Segments beginning with ":" are named parameters; all others are literals
// compared byte-for-byte.
//
// Parse errors on a parameter with an empty name and on duplicate parameter
// names within one pattern, wrapping [slop.ErrNotValid].
func Parse(raw string) (Pattern, error) {
	p := Pattern{raw: raw, literal: true}

	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, "/") {
		if !strings.HasPrefix(part, ":") {
			p.segments = append(p.segments, segment{value: part})
			continue
		}

		name := part[1:]
		if name == "" {
			return Pattern{}, fmt.Errorf("%w: pattern %q has a parameter with no name", slop.ErrNotValid, raw)
		}
		if _, ok := seen[name]; ok {
			return Pattern{}, fmt.Errorf("%w: pattern %q repeats parameter %q", slop.ErrNotValid, raw, name)
		}

		seen[name] = struct{}{}
		p.literal = false
		p.segments = append(p.segments, segment{value: name, param: true})
	}

	return p, nil
}

// MustParse is [Parse], panicking on an invalid pattern.
func MustParse(raw string) Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the original path template.
func (p Pattern) String() string { return p.raw }

// Match compares the concrete request path against the Pattern.
//
// Matching is deterministic and O(segment count): the path must have exactly
// as many segments as the Pattern, literal segments must be equal
// (case-sensitive, no normalization, no URL-decoding), and parameter segments
// always match, binding the actual segment under the parameter's name.
// On any literal mismatch the whole attempt fails and no bindings are kept.
func (p Pattern) Match(path string) (Params, bool) {
	// Fast path for fully literal patterns.
	if p.literal {
		if path == p.raw {
			return Params{}, true
		}
		return nil, false
	}

	parts := strings.Split(path, "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := make(Params)
	for i, seg := range p.segments {
		if seg.param {
			params[seg.value] = parts[i]
			continue
		}

		if seg.value != parts[i] {
			return nil, false
		}
	}

	return params, true
}
