// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// Fragment is a URI fragment, stored percent-encoded.
type Fragment struct {
	value   string
	present bool
}

// NewFragment encodes s as a fragment.
func NewFragment(s string) (Fragment, error) {
	v, err := encode(s, fragmentSet)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{value: v, present: true}, nil
}

// NewFragmentFrom coerces v to a fragment. A nil v is the absent fragment.
func NewFragmentFrom(v any) (Fragment, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil || !ok {
		return Fragment{}, err
	}
	return NewFragment(s)
}

// Value returns the encoded fragment and whether it is defined.
func (f Fragment) Value() (string, bool) { return f.value, f.present }

// Decoded returns the fragment without percent-encoding.
func (f Fragment) Decoded() (string, bool) { return codec.DecodeAll(f.value), f.present }

func (f Fragment) String() string { return f.value }

// URIComponent returns the fragment preceded by "#" when defined.
func (f Fragment) URIComponent() string {
	if !f.present {
		return ""
	}
	return "#" + f.value
}

// IsAbsent reports whether the fragment is undefined.
func (f Fragment) IsAbsent() bool { return !f.present }

// WithContent returns the fragment holding v.
func (f Fragment) WithContent(v any) (Fragment, error) {
	nf, err := NewFragmentFrom(v)
	if err != nil {
		return Fragment{}, err
	}
	if nf == f {
		return f, nil
	}
	return nf, nil
}

var _ uri.Decodable = Fragment{}
