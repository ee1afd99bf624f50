// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// Encoding selects how keys and values are escaped.
type Encoding int

const (
	// EncodingRFC3986 escapes following RFC 3986 section 3.4.
	EncodingRFC3986 Encoding = iota
	// EncodingRFC1738 is EncodingRFC3986 with spaces written as "+", as done
	// by HTML forms (application/x-www-form-urlencoded).
	EncodingRFC1738
	// EncodingNone neither decodes nor encodes.
	EncodingNone
)

func (e Encoding) String() string {
	switch e {
	case EncodingRFC3986:
		return "rfc3986"
	case EncodingRFC1738:
		return "rfc1738"
	case EncodingNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseEncoding returns the Encoding named s.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "rfc3986", "":
		return EncodingRFC3986, nil
	case "rfc1738", "form":
		return EncodingRFC1738, nil
	case "none":
		return EncodingNone, nil
	default:
		return 0, uri.Syntaxf("unknown query encoding %q", s)
	}
}

// DefaultSeparator separates the pairs of a query.
const DefaultSeparator = "&"

// pcharSet is the set of bytes allowed verbatim in a query, before the
// separator and "=" are removed from it.
var pcharSet = codec.NewSet(codec.Unreserved, codec.SubDelims, ":@/?")

func checkSeparator(sep string) error {
	if utf8.RuneCountInString(sep) != 1 {
		return uri.Syntaxf("the query separator %q must be a single character", sep)
	}
	if sep == "=" {
		return uri.Syntaxf("the query separator can not be %q", sep)
	}
	if err := codec.Filter(sep); err != nil {
		return err
	}
	return nil
}

type codecs struct {
	key   codec.Set
	value codec.Set
}

func newCodecs(sep string) codecs {
	return codecs{
		key:   pcharSet.Without("=" + sep),
		value: pcharSet.Without(sep),
	}
}

func (c codecs) decode(s string, enc Encoding) string {
	switch enc {
	case EncodingNone:
		return s
	case EncodingRFC1738:
		return codec.DecodeAll(codec.FromRFC1738(s))
	default:
		return codec.DecodeAll(s)
	}
}

// encode escapes a decoded key or value. A literal "%" is always escaped.
func (c codecs) encode(s string, set codec.Set, enc Encoding) string {
	switch enc {
	case EncodingNone:
		return s
	case EncodingRFC1738:
		return codec.ToRFC1738(codec.EscapeAll(s, set))
	default:
		return codec.EscapeAll(s, set)
	}
}

func (c codecs) encodePair(p Pair, enc Encoding) string {
	k := c.encode(p.Key, c.key, enc)
	if p.NoValue {
		return k
	}
	return k + "=" + c.encode(p.Value, c.value, enc)
}
