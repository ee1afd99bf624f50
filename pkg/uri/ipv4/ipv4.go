// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package ipv4 normalizes hosts written with the legacy IPv4 notations
// accepted by the WHATWG URL parser: hexadecimal, octal and decimal labels,
// and shorthands of fewer than four labels such as "0x7f.1".
package ipv4

import (
	"math/big"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uricomponents/pkg/uri/host"
)

var (
	hexRE = regexp.MustCompile(`^0[xX]([0-9A-Fa-f]*)$`)
	octRE = regexp.MustCompile(`^0([0-7]*)$`)
	decRE = regexp.MustCompile(`^[1-9][0-9]*$`)
)

const maxLabels = 4

// Parser converts IPv4 labels using the arithmetic of a Calculator.
type Parser[N any] struct {
	calc Calculator[N]
	max  N
	b255 N
	b256 N
}

// NewParser returns a Parser computing with c.
func NewParser[N any](c Calculator[N]) *Parser[N] {
	return &Parser[N]{
		calc: c,
		max:  c.Int(1<<32 - 1),
		b255: c.Int(255),
		b256: c.Int(256),
	}
}

// ParseLabel interprets text as a hexadecimal ("0x" prefix), octal (leading
// "0") or decimal number. ok is false for malformed labels and values
// outside [0, 2^32-1].
func (p *Parser[N]) ParseLabel(text string) (n N, ok bool) {
	switch {
	case hexRE.MatchString(text):
		digits := text[2:]
		if digits == "" {
			return p.calc.Int(0), true
		}
		n, ok = p.calc.FromDigits(digits, 16)
	case octRE.MatchString(text):
		if text == "0" {
			return p.calc.Int(0), true
		}
		n, ok = p.calc.FromDigits(text[1:], 8)
	case decRE.MatchString(text):
		n, ok = p.calc.FromDigits(text, 10)
	default:
		return n, false
	}
	if !ok || p.calc.Cmp(n, p.max) > 0 {
		var zero N
		return zero, false
	}
	return n, true
}

// Combine computes the address of 1 to 4 labels. Every label but the last
// must fit in a byte, the last one fills the remaining 5-n bytes.
func (p *Parser[N]) Combine(labels []N) (netip.Addr, bool) {
	n := len(labels)
	if n == 0 || n > maxLabels {
		return netip.Addr{}, false
	}
	last := labels[n-1]
	if p.calc.Cmp(last, p.calc.Pow(p.b256, 5-n)) >= 0 {
		return netip.Addr{}, false
	}
	sum := last
	for i, label := range labels[:n-1] {
		if p.calc.Cmp(label, p.b255) > 0 {
			return netip.Addr{}, false
		}
		sum = p.calc.Add(sum, p.calc.Mul(label, p.calc.Pow(p.b256, 3-i)))
	}
	return p.calc.ToAddr(sum)
}

// Parse converts a whole host, optionally ending with a dot, to an address.
func (p *Parser[N]) Parse(s string) (netip.Addr, bool) {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return netip.Addr{}, false
	}
	parts := strings.Split(s, ".")
	if len(parts) > maxLabels {
		return netip.Addr{}, false
	}
	labels := make([]N, 0, len(parts))
	for _, part := range parts {
		n, ok := p.ParseLabel(part)
		if !ok {
			return netip.Addr{}, false
		}
		labels = append(labels, n)
	}
	return p.Combine(labels)
}

// NormalizeHost returns the IPv4 host equivalent to h when h is a domain
// made of IPv4 labels. Any other host is returned unchanged.
func (p *Parser[N]) NormalizeHost(h host.Host) host.Host {
	if !h.IsDomain() {
		return h
	}
	addr, ok := p.Parse(h.String())
	if !ok {
		return h
	}
	nh, err := host.FromNetIP(addr)
	if err != nil {
		return h
	}
	return nh
}

// Normalizer is a Parser with its arithmetic backend hidden.
type Normalizer interface {
	Parse(s string) (netip.Addr, bool)
	NormalizeHost(h host.Host) host.Host
}

var (
	_ Normalizer = (*Parser[uint64])(nil)
	_ Normalizer = (*Parser[*big.Int])(nil)
)

// NewNormalizer returns a Normalizer using native integers on 64-bit
// platforms and arbitrary precision arithmetic elsewhere.
func NewNormalizer() Normalizer {
	if strconv.IntSize == 64 {
		return NewParser[uint64](Native{})
	}
	return NewParser[*big.Int](Big{})
}

var defaultNormalizer = NewNormalizer()

// Parse converts s to an IPv4 address with the default Normalizer.
func Parse(s string) (netip.Addr, bool) { return defaultNormalizer.Parse(s) }

// NormalizeHost normalizes h with the default Normalizer.
func NormalizeHost(h host.Host) host.Host { return defaultNormalizer.NormalizeHost(h) }
