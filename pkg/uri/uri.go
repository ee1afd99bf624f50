// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package uri holds the contracts shared by every URI component value:
// the error kinds reported on invalid input and the Component interface.
//
// The component values themselves live in the sub-packages: host, domain,
// ipv4, query and component.
package uri

import (
	"github.com/pkg/errors"
)

var (
	// ErrSyntax is returned when an input violates the grammar of the
	// component being built.
	ErrSyntax = errors.New("uri: syntax error")
	// ErrType is returned when an input value cannot be coerced to a string.
	ErrType = errors.New("uri: unsupported type")
	// ErrOffsetOutOfBounds is returned when a label or segment index is out
	// of range. It is a kind of ErrSyntax.
	ErrOffsetOutOfBounds = errors.WithMessage(ErrSyntax, "offset out of bounds")
)

// Component is a URI component value.
type Component interface {
	// Value returns the encoded component and whether it is defined.
	// ("", false) is an absent component while ("", true) is present but empty.
	Value() (string, bool)
	// String returns the encoded component, or "" when absent.
	String() string
	// URIComponent returns the component with its URI delimiter, if any.
	URIComponent() string
}

// Decodable is a Component exposing its unescaped form.
type Decodable interface {
	Component
	Decoded() (string, bool)
}

// Syntaxf returns an ErrSyntax annotated with a formatted message.
func Syntaxf(format string, args ...any) error {
	return errors.Wrapf(ErrSyntax, format, args...)
}

// Typef returns an ErrType annotated with a formatted message.
func Typef(format string, args ...any) error {
	return errors.Wrapf(ErrType, format, args...)
}

// OutOfBoundsf returns an ErrOffsetOutOfBounds annotated with a formatted message.
func OutOfBoundsf(format string, args ...any) error {
	return errors.Wrapf(ErrOffsetOutOfBounds, format, args...)
}
