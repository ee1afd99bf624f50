// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package query implements the URI query component as an ordered list of
// key/value pairs, with PHP style bracket keys exposed as nested Params.
package query

import (
	"iter"
	"slices"
	"strings"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// Pair is a decoded query pair. NoValue distinguishes "key" from "key=".
type Pair struct {
	Key     string
	Value   string
	NoValue bool
}

// KeyOnly returns a pair without value.
func KeyOnly(key string) Pair { return Pair{Key: key, NoValue: true} }

// KV returns a pair with a value.
func KV(key, value string) Pair { return Pair{Key: key, Value: value} }

func (p Pair) isEmpty() bool { return p.Key == "" && p.Value == "" }

// Query is an immutable query. The zero value is the absent query using the
// default separator.
type Query struct {
	pairs []Pair
	sep   string
}

// Parse parses an RFC 3986 encoded query using "&" as separator.
func Parse(s string) (Query, error) {
	return ParseWith(s, DefaultSeparator, EncodingRFC3986)
}

// ParseRFC1738 parses a form encoded query, where "+" is a space.
func ParseRFC1738(s string) (Query, error) {
	return ParseWith(s, DefaultSeparator, EncodingRFC1738)
}

// ParseWith parses s split on sep and decoded following enc.
//
// Pairs whose decoded key is empty are dropped, except for the empty query
// which holds a single key-only pair so that it stays defined.
func ParseWith(s, sep string, enc Encoding) (Query, error) {
	if err := checkSeparator(sep); err != nil {
		return Query{}, err
	}
	if err := codec.Filter(s); err != nil {
		return Query{}, err
	}
	q := Query{sep: sep}
	if s == "" {
		q.pairs = []Pair{KeyOnly("")}
		return q, nil
	}
	c := newCodecs(sep)
	for _, token := range strings.Split(s, sep) {
		k, v, hasValue := strings.Cut(token, "=")
		key := c.decode(k, enc)
		if key == "" {
			continue
		}
		p := Pair{Key: key, NoValue: !hasValue}
		if hasValue {
			p.Value = c.decode(v, enc)
		}
		q.pairs = append(q.pairs, p)
	}
	return q, nil
}

// FromPairs builds a query from decoded pairs. Empty keys are kept.
func FromPairs(pairs ...Pair) Query {
	return Query{pairs: slices.Clone(pairs), sep: DefaultSeparator}
}

// From coerces v to a string and parses it. A nil v is the absent query.
func From(v any) (Query, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil {
		return Query{}, err
	}
	if !ok {
		return Query{sep: DefaultSeparator}, nil
	}
	return Parse(s)
}

func (q Query) separator() string {
	if q.sep == "" {
		return DefaultSeparator
	}
	return q.sep
}

func (q Query) with(pairs []Pair) Query {
	return Query{pairs: pairs, sep: q.sep}
}

// Separator returns the pair separator.
func (q Query) Separator() string { return q.separator() }

// WithSeparator returns the query serialized with sep.
func (q Query) WithSeparator(sep string) (Query, error) {
	if err := checkSeparator(sep); err != nil {
		return Query{}, err
	}
	if sep == q.separator() {
		return q, nil
	}
	return Query{pairs: q.pairs, sep: sep}, nil
}

// Pairs returns a copy of the pairs.
func (q Query) Pairs() []Pair { return slices.Clone(q.pairs) }

// All iterates over the pairs in order.
func (q Query) All() iter.Seq[Pair] { return slices.Values(q.pairs) }

// Len returns the number of pairs.
func (q Query) Len() int { return len(q.pairs) }

// Has reports whether every key is present.
func (q Query) Has(keys ...string) bool {
	for _, k := range keys {
		if !slices.ContainsFunc(q.pairs, func(p Pair) bool { return p.Key == k }) {
			return false
		}
	}
	return true
}

// Get returns the value of the first pair named key. ok is false when the
// key is missing or the pair has no value.
func (q Query) Get(key string) (value string, ok bool) {
	for _, p := range q.pairs {
		if p.Key == key {
			return p.Value, !p.NoValue
		}
	}
	return "", false
}

// GetAll returns the values of every pair named key, in order. Pairs without
// value contribute "".
func (q Query) GetAll(key string) []string {
	var values []string
	for _, p := range q.pairs {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Params returns the pairs decomposed following PHP bracket notation.
func (q Query) Params() *Params {
	params := NewParams()
	for _, p := range q.pairs {
		params.extract(p.Key, p.Value)
	}
	return params
}

// Param returns the parameter named name, a string or a *Params.
func (q Query) Param(name string) (any, bool) {
	return q.Params().Get(name)
}

// Encode serializes the query with enc. ok is false for the absent query.
func (q Query) Encode(enc Encoding) (s string, ok bool) {
	if len(q.pairs) == 0 {
		return "", false
	}
	c := newCodecs(q.separator())
	parts := make([]string, len(q.pairs))
	for i, p := range q.pairs {
		parts[i] = c.encodePair(p, enc)
	}
	return strings.Join(parts, q.separator()), true
}

// Value returns the RFC 3986 encoded query and whether it is defined.
func (q Query) Value() (string, bool) { return q.Encode(EncodingRFC3986) }

// RFC3986 is Value.
func (q Query) RFC3986() (string, bool) { return q.Encode(EncodingRFC3986) }

// RFC1738 returns the form encoded query.
func (q Query) RFC1738() (string, bool) { return q.Encode(EncodingRFC1738) }

// Decoded returns the query without any escaping.
func (q Query) Decoded() (string, bool) { return q.Encode(EncodingNone) }

func (q Query) String() string {
	s, _ := q.Value()
	return s
}

// URIComponent returns the query prefixed with "?" when defined.
func (q Query) URIComponent() string {
	if s, ok := q.Value(); ok {
		return "?" + s
	}
	return ""
}

// IsAbsent reports whether the query is undefined.
func (q Query) IsAbsent() bool { return len(q.pairs) == 0 }

// WithContent returns the query parsed from v with the receiver separator.
// The receiver is returned when the content is unchanged.
func (q Query) WithContent(v any) (Query, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil {
		return Query{}, err
	}
	nq := q.with(nil)
	if ok {
		if nq, err = ParseWith(s, q.separator(), EncodingRFC3986); err != nil {
			return Query{}, err
		}
	}
	if nq.Equal(q) {
		return q, nil
	}
	return nq, nil
}

// Equal reports whether both queries hold the same pairs and separator.
func (q Query) Equal(o Query) bool {
	return q.separator() == o.separator() && slices.Equal(q.pairs, o.pairs)
}

var (
	_ uri.Component = Query{}
	_ uri.Decodable = Query{}
)
