// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the percent-encoding primitives shared by every URI
// component: RFC 3986 character classes, escape-aware encoding and decoding,
// and the RFC 1738 query transform.
package codec

import (
	"strings"

	"github.com/google/uricomponents/pkg/uri"
)

/*
   RFC 3986 character classes (https://www.rfc-editor.org/rfc/rfc3986#section-2):

     unreserved  = ALPHA / DIGIT / "-" / "." / "_" / "~"
     gen-delims  = ":" / "/" / "?" / "#" / "[" / "]" / "@"
     sub-delims  = "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
     pct-encoded = "%" HEXDIG HEXDIG
*/
const (
	Alpha      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	Digit      = "0123456789"
	Unreserved = Alpha + Digit + "-._~"
	GenDelims  = ":/?#[]@"
	SubDelims  = "!$&'()*+,;="
)

const upperhex = "0123456789ABCDEF"

// Set is a byte membership table.
type Set [256]bool

// NewSet returns the Set of every byte found in chars.
func NewSet(chars ...string) Set {
	var s Set
	for _, c := range chars {
		for i := 0; i < len(c); i++ {
			s[c[i]] = true
		}
	}
	return s
}

// Contains reports whether b is in the set.
func (s Set) Contains(b byte) bool { return s[b] }

// With returns a copy of s extended with every byte of chars.
func (s Set) With(chars string) Set {
	for i := 0; i < len(chars); i++ {
		s[chars[i]] = true
	}
	return s
}

// Without returns a copy of s without any byte of chars.
func (s Set) Without(chars string) Set {
	for i := 0; i < len(chars); i++ {
		s[chars[i]] = false
	}
	return s
}

// Frequently used sets.
var (
	UnreservedSet = NewSet(Unreserved)
	SubDelimsSet  = NewSet(SubDelims)
	GenDelimsSet  = NewSet(GenDelims)
	// ReservedSet holds the octets that are never decoded by Decode callers
	// that must keep the component delimiters intact.
	ReservedSet = NewSet(GenDelims, SubDelims, "%")
)

// Filter rejects strings containing ASCII control characters.
func Filter(s string) error {
	if i := strings.IndexFunc(s, isControl); i >= 0 {
		return uri.Syntaxf("%q contains the control character %U at offset %d", s, s[i], i)
	}
	return nil
}

func isControl(r rune) bool { return r < 0x20 || r == 0x7f }

// IsHex reports whether b is an hexadecimal digit.
func IsHex(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

func unhex(b byte) byte {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'f' {
		return b - 'a' + 'A'
	}
	return b
}

// isTriplet reports whether s[i:] starts with a valid pct-encoded triplet.
func isTriplet(s string, i int) bool {
	return i+2 < len(s) && s[i] == '%' && IsHex(s[i+1]) && IsHex(s[i+2])
}

// HasBareEscape reports whether s holds a "%" not followed by two hex digits.
func HasBareEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !isTriplet(s, i) {
			return true
		}
	}
	return false
}

// IsASCII reports whether s only holds ASCII bytes.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Decode decodes every pct-encoded triplet of s except those whose octet is
// in preserve: these are kept encoded with uppercase hexadecimal digits.
// Invalid escape sequences are left untouched.
func Decode(s string, preserve Set) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isTriplet(s, i) {
			b.WriteByte(s[i])
			continue
		}
		octet := unhex(s[i+1])<<4 | unhex(s[i+2])
		if preserve.Contains(octet) {
			b.WriteByte('%')
			b.WriteByte(upper(s[i+1]))
			b.WriteByte(upper(s[i+2]))
		} else {
			b.WriteByte(octet)
		}
		i += 2
	}
	return b.String()
}

// DecodeAll decodes every valid pct-encoded triplet of s.
func DecodeAll(s string) string {
	return Decode(s, Set{})
}

// Encode escapes every byte of s outside allowed. Valid pct-encoded triplets
// are kept, with their hexadecimal digits uppercased, so that encoding an
// already encoded string is a no-op. A "%" that does not start a triplet is
// encoded as "%25".
func Encode(s string, allowed Set) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isTriplet(s, i):
			b.WriteByte('%')
			b.WriteByte(upper(s[i+1]))
			b.WriteByte(upper(s[i+2]))
			i += 2
		case c != '%' && allowed.Contains(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

// EscapeAll escapes every byte of s outside allowed, "%" included.
func EscapeAll(s string, allowed Set) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' && allowed.Contains(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

var rfc1738 = strings.NewReplacer("+", "%2B", "~", "%7E")

// ToRFC1738 converts an RFC 3986 encoded string to its RFC 1738 form: the
// literal "+" and "~" are escaped and encoded spaces become "+".
func ToRFC1738(s string) string {
	return strings.ReplaceAll(rfc1738.Replace(s), "%20", "+")
}

// FromRFC1738 turns every "+" of an RFC 1738 encoded string into an encoded
// space so that it can be decoded as RFC 3986.
func FromRFC1738(s string) string {
	return strings.ReplaceAll(s, "+", "%20")
}
