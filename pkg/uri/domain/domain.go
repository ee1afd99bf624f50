// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package domain exposes a domain name host as a sequence of labels indexed
// from the root: index 0 is the top-level label.
package domain

import (
	"iter"
	"slices"
	"strings"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
	"github.com/google/uricomponents/pkg/uri/host"
)

// Domain is an immutable domain name. Every edit re-parses the resulting
// host so an invalid label is rejected by the method introducing it.
type Domain struct {
	host   host.Host
	labels []string
}

// New parses s as a domain name.
func New(s string) (Domain, error) {
	h, err := host.New(s)
	if err != nil {
		return Domain{}, err
	}
	return FromHost(h)
}

// From coerces v to a string and parses it as a domain name.
func From(v any) (Domain, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil {
		return Domain{}, err
	}
	if !ok {
		return Domain{}, uri.Syntaxf("a domain can not be undefined")
	}
	return New(s)
}

// FromHost returns the labels of h, which must be a domain name.
func FromHost(h host.Host) (Domain, error) {
	if !h.IsDomain() {
		return Domain{}, uri.Syntaxf("host %q is not a domain name", h.String())
	}
	labels := strings.Split(h.String(), ".")
	slices.Reverse(labels)
	return Domain{host: h, labels: labels}, nil
}

// Host returns the domain as a host.
func (d Domain) Host() host.Host { return d.host }

// Value returns the domain and whether it is defined.
func (d Domain) Value() (string, bool) { return d.host.Value() }

func (d Domain) String() string { return d.host.String() }

// URIComponent returns the domain as it appears in a URI.
func (d Domain) URIComponent() string { return d.host.URIComponent() }

// Labels returns the labels, top-level label first.
func (d Domain) Labels() []string { return slices.Clone(d.labels) }

// Len returns the number of labels, the root label included.
func (d Domain) Len() int { return len(d.labels) }

// All iterates over the labels from the top-level label.
func (d Domain) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, l := range d.labels {
			if !yield(i, l) {
				return
			}
		}
	}
}

// Get returns the label at index i. A negative index counts from the
// leftmost label: -1 is the leftmost one.
func (d Domain) Get(i int) (string, bool) {
	if i < 0 {
		i += len(d.labels)
	}
	if i < 0 || i >= len(d.labels) {
		return "", false
	}
	return d.labels[i], true
}

// Keys returns the indexes of every label equal to label.
func (d Domain) Keys(label string) []int {
	var keys []int
	for i, l := range d.labels {
		if l == label {
			keys = append(keys, i)
		}
	}
	return keys
}

// IsAbsolute reports whether the domain ends with the root label.
func (d Domain) IsAbsolute() bool {
	return len(d.labels) > 1 && d.labels[0] == ""
}

// WithRootLabel returns the absolute form of the domain.
func (d Domain) WithRootLabel() (Domain, error) {
	if d.IsAbsolute() {
		return d, nil
	}
	return New(d.String() + ".")
}

// WithoutRootLabel returns the relative form of the domain.
func (d Domain) WithoutRootLabel() (Domain, error) {
	if !d.IsAbsolute() {
		return d, nil
	}
	return New(strings.TrimSuffix(d.String(), "."))
}

// Prepend adds label as the leftmost label.
func (d Domain) Prepend(label string) (Domain, error) {
	return New(label + "." + d.String())
}

// Append adds label as the rightmost label, before the root label if any.
func (d Domain) Append(label string) (Domain, error) {
	s := strings.TrimSuffix(d.String(), ".") + "." + label
	if d.IsAbsolute() {
		s += "."
	}
	return New(s)
}

// WithLabel replaces the label at index i. Index Len() prepends and index
// -Len()-1 appends.
func (d Domain) WithLabel(i int, label string) (Domain, error) {
	n := len(d.labels)
	if i < -n-1 || i > n {
		return Domain{}, uri.OutOfBoundsf("label index %d not in [%d, %d]", i, -n-1, n)
	}
	switch {
	case i == n:
		return d.Prepend(label)
	case i == -n-1:
		return d.Append(label)
	case i < 0:
		i += n
	}
	if d.labels[i] == label {
		return d, nil
	}
	labels := slices.Clone(d.labels)
	labels[i] = label
	return fromLabels(labels)
}

// WithoutLabel removes the labels at the given indexes. Removing every label
// is an error.
func (d Domain) WithoutLabel(indexes ...int) (Domain, error) {
	if len(indexes) == 0 {
		return d, nil
	}
	n := len(d.labels)
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i < -n || i >= n {
			return Domain{}, uri.OutOfBoundsf("label index %d not in [%d, %d]", i, -n, n-1)
		}
		if i < 0 {
			i += n
		}
		drop[i] = true
	}
	if len(drop) == n {
		return Domain{}, uri.Syntaxf("a domain can not be emptied of its labels")
	}
	var labels []string
	for i, l := range d.labels {
		if !drop[i] {
			labels = append(labels, l)
		}
	}
	return fromLabels(labels)
}

// WithContent returns a domain holding v. The receiver is returned when the
// content is unchanged.
func (d Domain) WithContent(v any) (Domain, error) {
	nd, err := From(v)
	if err != nil {
		return Domain{}, err
	}
	if nd.Equal(d) {
		return d, nil
	}
	return nd, nil
}

// Equal reports whether both domains hold the same value.
func (d Domain) Equal(o Domain) bool { return d.host.Equal(o.host) }

func fromLabels(reversed []string) (Domain, error) {
	labels := slices.Clone(reversed)
	slices.Reverse(labels)
	return New(strings.Join(labels, "."))
}

var _ uri.Component = Domain{}
