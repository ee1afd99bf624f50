// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"regexp"
	"strings"

	"github.com/google/uricomponents/internal/cache"
	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

var schemeRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*$`)

// SchemeCacheSize bounds the default scheme normalization cache.
const SchemeCacheSize = 100

var schemeCache cache.Cache = cache.NewLRU(SchemeCacheSize)

// Scheme is a URI scheme, stored lowercase.
type Scheme struct {
	value   string
	present bool
}

// SchemeOption configures scheme parsing.
type SchemeOption func(*schemeOptions)

type schemeOptions struct {
	cache cache.Cache
}

// WithSchemeCache memoizes the normalization in c instead of the default
// cache. A nil c disables memoization.
func WithSchemeCache(c cache.Cache) SchemeOption {
	return func(o *schemeOptions) { o.cache = c }
}

func normalizeScheme(s string) (any, error) {
	if !schemeRE.MatchString(s) {
		return nil, uri.Syntaxf("scheme %q is invalid", s)
	}
	return strings.ToLower(s), nil
}

// NewScheme validates s against "ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )".
func NewScheme(s string, opts ...SchemeOption) (Scheme, error) {
	o := schemeOptions{cache: schemeCache}
	for _, opt := range opts {
		opt(&o)
	}
	var v any
	var err error
	if o.cache == nil {
		v, err = normalizeScheme(s)
	} else {
		v, err = o.cache.GetOrSet(s, func() (any, error) { return normalizeScheme(s) })
	}
	if err != nil {
		return Scheme{}, err
	}
	return Scheme{value: v.(string), present: true}, nil
}

// NewSchemeFrom coerces v to a string. A nil v is the absent scheme.
func NewSchemeFrom(v any, opts ...SchemeOption) (Scheme, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil || !ok {
		return Scheme{}, err
	}
	return NewScheme(s, opts...)
}

// Value returns the scheme and whether it is defined.
func (s Scheme) Value() (string, bool) { return s.value, s.present }

func (s Scheme) String() string { return s.value }

// URIComponent returns the scheme followed by ":" when defined.
func (s Scheme) URIComponent() string {
	if !s.present {
		return ""
	}
	return s.value + ":"
}

// IsAbsent reports whether the scheme is undefined.
func (s Scheme) IsAbsent() bool { return !s.present }

// WithContent returns the scheme holding v.
func (s Scheme) WithContent(v any) (Scheme, error) {
	ns, err := NewSchemeFrom(v)
	if err != nil {
		return Scheme{}, err
	}
	if ns == s {
		return s, nil
	}
	return ns, nil
}

var _ uri.Component = Scheme{}
