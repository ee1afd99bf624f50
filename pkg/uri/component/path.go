// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"strings"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// Path is a URI path, stored percent-encoded. A path is always defined,
// possibly empty.
type Path struct {
	value string
}

// NewPath encodes s as a path.
func NewPath(s string) (Path, error) {
	v, err := encode(s, pathSet)
	if err != nil {
		return Path{}, err
	}
	return Path{value: v}, nil
}

// NewPathFrom coerces v to a path. A nil v is the empty path.
func NewPathFrom(v any) (Path, error) {
	s, _, err := codec.Stringify(v)
	if err != nil {
		return Path{}, err
	}
	return NewPath(s)
}

// Value returns the encoded path. It is always defined.
func (p Path) Value() (string, bool) { return p.value, true }

// Decoded returns the path with every escape but "%2F" decoded so that
// the segment boundaries are kept.
func (p Path) Decoded() (string, bool) { return codec.Decode(p.value, codec.NewSet("/")), true }

func (p Path) String() string { return p.value }

func (p Path) URIComponent() string { return p.value }

// IsAbsolute reports whether the path starts with "/".
func (p Path) IsAbsolute() bool { return strings.HasPrefix(p.value, "/") }

// HasTrailingSlash reports whether the path ends with "/".
func (p Path) HasTrailingSlash() bool { return strings.HasSuffix(p.value, "/") }

// WithLeadingSlash returns the path made absolute.
func (p Path) WithLeadingSlash() Path {
	if p.IsAbsolute() {
		return p
	}
	return Path{value: "/" + p.value}
}

// WithoutLeadingSlash returns the path without its first "/".
func (p Path) WithoutLeadingSlash() Path {
	if !p.IsAbsolute() {
		return p
	}
	return Path{value: p.value[1:]}
}

// WithTrailingSlash returns the path ending with "/".
func (p Path) WithTrailingSlash() Path {
	if p.HasTrailingSlash() {
		return p
	}
	return Path{value: p.value + "/"}
}

// WithoutTrailingSlash returns the path without its last "/".
func (p Path) WithoutTrailingSlash() Path {
	if !p.HasTrailingSlash() {
		return p
	}
	return Path{value: p.value[:len(p.value)-1]}
}

// WithoutDotSegments removes the "." and ".." segments as described in
// RFC 3986 section 5.2.4.
func (p Path) WithoutDotSegments() Path {
	if !strings.Contains(p.value, ".") {
		return p
	}
	v := removeDotSegments(p.value)
	if v == p.value {
		return p
	}
	return Path{value: v}
}

func removeDotSegments(in string) string {
	var out []string
	pop := func() {
		if len(out) > 0 {
			out = out[:len(out)-1]
		}
	}
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			pop()
		case in == "/..":
			in = "/"
			pop()
		case in == "." || in == "..":
			in = ""
		default:
			// Move the first segment, with its leading "/", to the output.
			i := strings.IndexByte(in[1:], '/')
			if i < 0 {
				out = append(out, in)
				in = ""
			} else {
				out = append(out, in[:i+1])
				in = in[i+1:]
			}
		}
	}
	return strings.Join(out, "")
}

// WithContent returns the path holding v.
func (p Path) WithContent(v any) (Path, error) {
	np, err := NewPathFrom(v)
	if err != nil {
		return Path{}, err
	}
	if np == p {
		return p, nil
	}
	return np, nil
}

var _ uri.Decodable = Path{}
