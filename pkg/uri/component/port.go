// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"strconv"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// Port is a URI port, a non-negative integer.
type Port struct {
	value   int
	present bool
}

// NewPort returns the port p.
func NewPort(p int) (Port, error) {
	if p < 0 {
		return Port{}, uri.Syntaxf("port %d is negative", p)
	}
	return Port{value: p, present: true}, nil
}

// ParsePort parses a string of decimal digits.
func ParsePort(s string) (Port, error) {
	if s == "" {
		return Port{}, uri.Syntaxf("port can not be empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Port{}, uri.Syntaxf("port %q is not a number", s)
		}
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return Port{}, uri.Syntaxf("port %q is out of range", s)
	}
	return NewPort(p)
}

// NewPortFrom coerces v to a port. A nil v is the absent port.
func NewPortFrom(v any) (Port, error) {
	if p, ok := v.(int); ok {
		return NewPort(p)
	}
	s, ok, err := codec.Stringify(v)
	if err != nil || !ok {
		return Port{}, err
	}
	return ParsePort(s)
}

// Int returns the port number and whether it is defined.
func (p Port) Int() (int, bool) { return p.value, p.present }

// Value returns the port and whether it is defined.
func (p Port) Value() (string, bool) {
	if !p.present {
		return "", false
	}
	return strconv.Itoa(p.value), true
}

func (p Port) String() string {
	s, _ := p.Value()
	return s
}

// URIComponent returns the port preceded by ":" when defined.
func (p Port) URIComponent() string {
	if !p.present {
		return ""
	}
	return ":" + p.String()
}

// IsAbsent reports whether the port is undefined.
func (p Port) IsAbsent() bool { return !p.present }

// WithContent returns the port holding v.
func (p Port) WithContent(v any) (Port, error) {
	np, err := NewPortFrom(v)
	if err != nil {
		return Port{}, err
	}
	if np == p {
		return p, nil
	}
	return np, nil
}

var _ uri.Component = Port{}
