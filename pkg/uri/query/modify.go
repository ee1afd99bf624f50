// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"regexp"
	"slices"
	"strings"

	"github.com/google/uricomponents/internal/codec"
)

func toPair(key string, value any) (Pair, error) {
	s, ok, err := codec.Stringify(value)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Key: key, Value: s, NoValue: !ok}, nil
}

// replacePair puts p at the position of the first pair sharing its key and
// removes the others. p is appended when the key is missing.
func replacePair(pairs []Pair, p Pair) []Pair {
	out := make([]Pair, 0, len(pairs)+1)
	found := false
	for _, src := range pairs {
		if src.Key != p.Key {
			out = append(out, src)
			continue
		}
		if !found {
			out = append(out, p)
			found = true
		}
	}
	if !found {
		out = append(out, p)
	}
	return out
}

// WithPair sets key to value, a nil value producing a key-only pair. Every
// existing pair named key is replaced by a single pair at the position of
// the first one.
func (q Query) WithPair(key string, value any) (Query, error) {
	p, err := toPair(key, value)
	if err != nil {
		return Query{}, err
	}
	nq := q.with(replacePair(q.pairs, p))
	if nq.Equal(q) {
		return q, nil
	}
	return nq, nil
}

// AppendTo adds a pair without removing the existing pairs named key.
func (q Query) AppendTo(key string, value any) (Query, error) {
	p, err := toPair(key, value)
	if err != nil {
		return Query{}, err
	}
	return q.with(append(slices.Clone(q.pairs), p)), nil
}

// Append adds the pairs of other, skipping key-only pairs with an empty key.
func (q Query) Append(other Query) Query {
	pairs := slices.Clone(q.pairs)
	for _, p := range other.pairs {
		if p.Key == "" && p.NoValue {
			continue
		}
		pairs = append(pairs, p)
	}
	return q.with(pairs)
}

// Merge sets every key of other as WithPair does, the last pair of a
// repeated key winning. Pairs left with an empty key and value are removed.
func (q Query) Merge(other Query) Query {
	pairs := slices.Clone(q.pairs)
	for _, p := range other.pairs {
		pairs = replacePair(pairs, p)
	}
	pairs = slices.DeleteFunc(pairs, Pair.isEmpty)
	nq := q.with(pairs)
	if nq.Equal(q) {
		return q
	}
	return nq
}

func (q Query) without(drop func(Pair) bool) Query {
	if !slices.ContainsFunc(q.pairs, drop) {
		return q
	}
	return q.with(slices.DeleteFunc(slices.Clone(q.pairs), drop))
}

// WithoutPair removes every pair named by keys.
func (q Query) WithoutPair(keys ...string) Query {
	return q.without(func(p Pair) bool { return slices.Contains(keys, p.Key) })
}

// WithoutParam removes the pairs making up the named parameters: "a" removes
// "a", "a[]" and "a[b][c]" but not "ab".
func (q Query) WithoutParam(names ...string) Query {
	return q.without(func(p Pair) bool {
		for _, name := range names {
			if name == "" {
				continue
			}
			if p.Key == name || strings.HasPrefix(p.Key, name+"[") {
				return true
			}
		}
		return false
	})
}

// WithoutDuplicates removes repeated pairs, keeping the first occurrence.
// Pairs sharing a key with distinct values are kept.
func (q Query) WithoutDuplicates() Query {
	seen := make(map[Pair]bool, len(q.pairs))
	pairs := make([]Pair, 0, len(q.pairs))
	for _, p := range q.pairs {
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	if len(pairs) == len(q.pairs) {
		return q
	}
	return q.with(pairs)
}

// WithoutEmptyPairs removes the pairs with an empty key and no or an empty
// value.
func (q Query) WithoutEmptyPairs() Query {
	return q.without(Pair.isEmpty)
}

var numericIndexRE = regexp.MustCompile(`\[\d+\]`)

// WithoutNumericIndices rewrites "a[0][b][1]" keys as "a[][b][]".
func (q Query) WithoutNumericIndices() Query {
	changed := false
	pairs := slices.Clone(q.pairs)
	for i, p := range pairs {
		if k := numericIndexRE.ReplaceAllString(p.Key, "[]"); k != p.Key {
			pairs[i].Key = k
			changed = true
		}
	}
	if !changed {
		return q
	}
	return q.with(pairs)
}

// Sort orders the pairs by key in byte order.
func (q Query) Sort() Query { return q.SortFunc(ByteOrder) }

// SortFunc orders the pairs by key with cmp. The sort is stable so pairs
// sharing a key keep their relative order.
func (q Query) SortFunc(cmp Comparator) Query {
	byKey := func(a, b Pair) int { return cmp(a.Key, b.Key) }
	if slices.IsSortedFunc(q.pairs, byKey) {
		return q
	}
	pairs := slices.Clone(q.pairs)
	slices.SortStableFunc(pairs, byKey)
	return q.with(pairs)
}
