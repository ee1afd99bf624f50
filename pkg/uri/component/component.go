// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package component implements the URI components other than the host and
// the query: scheme, port, fragment, path, user information, authority and
// the data URI path.
//
// Every value is immutable, its zero value is the absent component, and
// WithContent returns the receiver when the new content is equivalent.
package component

import (
	"github.com/google/uricomponents/internal/codec"
)

var (
	// RFC 3986 section 3.3.
	pathSet = codec.NewSet(codec.Unreserved, codec.SubDelims, ":@/")
	// RFC 3986 section 3.5.
	fragmentSet = pathSet.With("?")
	// RFC 3986 section 3.2.1, ":" splits the user from the password.
	userSet = codec.NewSet(codec.Unreserved, codec.SubDelims)
	passSet = userSet.With(":")
)

// encode filters control characters and percent-encodes s.
func encode(s string, allowed codec.Set) (string, error) {
	if err := codec.Filter(s); err != nil {
		return "", err
	}
	return codec.Encode(s, allowed), nil
}
