// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"encoding/json"
	"iter"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Params is an ordered map of query parameters built from bracket keys:
// "a[b][]=1&a[b][]=2" is {"a": {"b": {"0": "1", "1": "2"}}}. Values are
// either string or *Params.
type Params struct {
	keys   []string
	values map[string]any
	next   int
}

// NewParams returns an empty Params.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Len returns the number of entries.
func (p *Params) Len() int { return len(p.keys) }

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string { return slices.Clone(p.keys) }

// Get returns the value stored under key.
func (p *Params) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// All iterates over the entries in insertion order.
func (p *Params) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Set stores v, a string or a *Params, under key. An existing key keeps its
// position.
func (p *Params) Set(key string, v any) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
	if i, ok := intKey(key); ok && i >= p.next {
		p.next = i + 1
	}
}

// Add stores v under the next integer key.
func (p *Params) Add(v any) {
	p.Set(strconv.Itoa(p.next), v)
}

// Map converts the params to nested map[string]any values.
func (p *Params) Map() map[string]any {
	m := make(map[string]any, len(p.keys))
	for k, v := range p.All() {
		if sub, ok := v.(*Params); ok {
			m[k] = sub.Map()
			continue
		}
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the params as an object keeping the key order.
func (p *Params) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

var intKeyRE = regexp.MustCompile(`^(0|-?[1-9][0-9]*)$`)

// intKey reports whether key is an integer array key.
func intKey(key string) (int, bool) {
	if !intKeyRE.MatchString(key) {
		return 0, false
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return i, true
}

// extract stores value under the bracket key name.
func (p *Params) extract(name, value string) {
	if name == "" {
		return
	}
	left := strings.IndexByte(name, '[')
	if left < 0 {
		p.Set(name, value)
		return
	}
	right := strings.IndexByte(name[left:], ']')
	if right < 0 {
		p.Set(name, value)
		return
	}
	right += left
	key := name[:left]
	sub, ok := p.values[key].(*Params)
	if !ok {
		sub = NewParams()
		p.Set(key, sub)
	}
	index := name[left+1 : right]
	if index == "" {
		sub.Add(value)
		return
	}
	remaining := name[right+1:]
	if !strings.HasPrefix(remaining, "[") || !strings.Contains(remaining[1:], "]") {
		remaining = ""
	}
	sub.extract(index+remaining, value)
}
