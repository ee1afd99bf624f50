// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"reflect"
	"slices"
	"strconv"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// FromParams builds a query from nested parameters the way PHP's
// http_build_query does: {"a": {"b": [1, 2]}} gives "a[b][0]=1&a[b][1]=2".
// params is a *Params, a map with string keys, or a slice or array. Nested
// values follow the same rules, nil values are skipped and scalars are
// stringified. Maps are walked in key order.
func FromParams(params any) (Query, error) {
	q := Query{sep: DefaultSeparator}
	if params == nil {
		return q, nil
	}
	if !isContainer(params) {
		return Query{}, uri.Typef("%T is not a parameter container", params)
	}
	pairs, err := buildPairs(nil, "", params)
	if err != nil {
		return Query{}, err
	}
	q.pairs = pairs
	return q, nil
}

func isContainer(v any) bool {
	if _, ok := v.(*Params); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func nestedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}

func buildPairs(pairs []Pair, prefix string, v any) ([]Pair, error) {
	if v == nil {
		return pairs, nil
	}
	if p, ok := v.(*Params); ok {
		if p == nil {
			return pairs, nil
		}
		var err error
		for k, sub := range p.All() {
			if pairs, err = buildPairs(pairs, nestedKey(prefix, k), sub); err != nil {
				return nil, err
			}
		}
		return pairs, nil
	}
	if _, ok := v.([]byte); !ok {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Map:
			return buildMap(pairs, prefix, rv)
		case reflect.Slice, reflect.Array:
			var err error
			for i := range rv.Len() {
				if pairs, err = buildPairs(pairs, nestedKey(prefix, strconv.Itoa(i)), rv.Index(i).Interface()); err != nil {
					return nil, err
				}
			}
			return pairs, nil
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return pairs, nil
			}
		}
	}
	s, ok, err := codec.Stringify(v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return pairs, nil
	}
	return append(pairs, Pair{Key: prefix, Value: s}), nil
}

func buildMap(pairs []Pair, prefix string, rv reflect.Value) ([]Pair, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, uri.Typef("map keys of %s are not strings", rv.Type())
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return ByteOrder(a.String(), b.String())
	})
	var err error
	for _, k := range keys {
		if pairs, err = buildPairs(pairs, nestedKey(prefix, k.String()), rv.MapIndex(k).Interface()); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}

// FromMap builds a query from flat values: nil gives a key-only pair, a
// scalar a single pair and a list of scalars one pair per element. Keys are
// walked in order. Nested containers are rejected.
func FromMap(m map[string]any) (Query, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	q := Query{sep: DefaultSeparator}
	for _, k := range keys {
		v := m[k]
		if v == nil {
			q.pairs = append(q.pairs, KeyOnly(k))
			continue
		}
		values, err := flatValues(k, v)
		if err != nil {
			return Query{}, err
		}
		for _, s := range values {
			q.pairs = append(q.pairs, KV(k, s))
		}
	}
	return q, nil
}

func flatValues(key string, v any) ([]string, error) {
	if s, ok, err := scalar(v); err == nil {
		if !ok {
			return nil, nil
		}
		return []string{s}, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, uri.Syntaxf("value of %q: %T is neither a scalar nor a list", key, v)
	}
	var values []string
	for i := range rv.Len() {
		elem := rv.Index(i).Interface()
		s, ok, err := scalar(elem)
		if err != nil {
			return nil, uri.Syntaxf("value of %q at %d: %T is not a scalar", key, i, elem)
		}
		if ok {
			values = append(values, s)
		}
	}
	return values, nil
}

// scalar stringifies v unless it is a container.
func scalar(v any) (string, bool, error) {
	if _, ok := v.([]byte); !ok && v != nil && isContainer(v) {
		return "", false, uri.Syntaxf("%T is a container", v)
	}
	return codec.Stringify(v)
}
