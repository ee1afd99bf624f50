// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package host implements the URI host component: classification of a raw
// host into an IP literal, a domain name or an opaque registered name, and
// the IDNA conversion of domain names.
package host

import (
	"net/netip"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// Kind is the classification of a host.
type Kind int

const (
	KindAbsent Kind = iota
	KindEmpty
	KindIPv4
	KindIPv6
	KindIPvFuture
	KindDomain
	KindRegName
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindEmpty:
		return "empty"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	case KindIPvFuture:
		return "ipvfuture"
	case KindDomain:
		return "domain"
	case KindRegName:
		return "reg-name"
	default:
		return "unknown"
	}
}

// Classification is the outcome of Classify.
type Classification struct {
	Kind Kind
	// Host is the canonical form stored by a Host.
	Host string
	// Version is the IPvFuture version, or "4"/"6" for IP literals.
	Version string
	// Zone reports whether an IPv6 literal carries a zone identifier.
	Zone bool
}

const (
	maxDomainLength = 253
	maxLabels       = 127
)

var (
	ipFutureRE = regexp.MustCompile(`^[vV]([0-9A-Fa-f]+)\.[A-Za-z0-9\-._~!$&'()*+,;=:]+$`)
	// Bytes allowed verbatim in a registered name.
	regNameSet = codec.NewSet(codec.Unreserved, codec.SubDelims)
	// Bytes rejected when found unencoded in a raw host.
	invalidHostSet = codec.GenDelimsSet.With(" ")
)

type options struct {
	conv Converter
}

// Option configures host parsing.
type Option func(*options)

// WithConverter overrides the IDNA Converter used to validate and convert
// internationalized domain names.
func WithConverter(c Converter) Option {
	return func(o *options) { o.conv = c }
}

func newOptions(opts []Option) options {
	o := options{conv: IDNA}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Classify determines the kind of raw and its canonical form. The checks are
// ordered: empty, IPv4, bracketed IP literal, domain name, registered name.
func Classify(raw string, opts ...Option) (Classification, error) {
	o := newOptions(opts)
	return classify(raw, o.conv)
}

func classify(raw string, conv Converter) (Classification, error) {
	if err := codec.Filter(raw); err != nil {
		return Classification{}, err
	}
	if raw == "" {
		return Classification{Kind: KindEmpty}, nil
	}
	if addr, err := netip.ParseAddr(raw); err == nil && addr.Is4() {
		return Classification{Kind: KindIPv4, Host: raw, Version: "4"}, nil
	}
	if strings.HasPrefix(raw, "[") {
		if !strings.HasSuffix(raw, "]") {
			return Classification{}, uri.Syntaxf("host %q: invalid IP literal format", raw)
		}
		return classifyLiteral(raw)
	}
	return classifyName(raw, conv)
}

func classifyLiteral(raw string) (Classification, error) {
	inner := raw[1 : len(raw)-1]
	if addr, zone, hasZone, ok := splitZone(inner); ok {
		if _, err := parseIPv6(addr, zone, hasZone); err != nil {
			return Classification{}, uri.Syntaxf("host %q: %s", raw, err.Error())
		}
		return Classification{Kind: KindIPv6, Host: raw, Version: "6", Zone: hasZone}, nil
	}
	if m := ipFutureRE.FindStringSubmatch(inner); m != nil && m[1] != "4" && m[1] != "6" {
		return Classification{Kind: KindIPvFuture, Host: raw, Version: m[1]}, nil
	}
	return Classification{}, uri.Syntaxf("host %q: invalid IP literal format", raw)
}

// splitZone splits an IPv6 literal on its first "%". ok is false when the
// address part is not an IPv6 address.
func splitZone(inner string) (addr, zone string, hasZone, ok bool) {
	addr, zone, hasZone = strings.Cut(inner, "%")
	a, err := netip.ParseAddr(addr)
	if err != nil || !a.Is6() || a.Zone() != "" {
		return "", "", false, false
	}
	return addr, zone, hasZone, true
}

type zoneError string

func (e zoneError) Error() string { return string(e) }

// parseIPv6 validates the zone identifier of an IPv6 literal. The encoded
// zone "25eth0" of "fe80::1%25eth0" decodes to "eth0".
func parseIPv6(addr, zone string, hasZone bool) (netip.Addr, error) {
	a := netip.MustParseAddr(addr)
	if !hasZone {
		return a, nil
	}
	decoded := strings.TrimPrefix(codec.DecodeAll("%"+zone), "%")
	if decoded == "" {
		return netip.Addr{}, zoneError("empty zone identifier")
	}
	if !codec.IsASCII(decoded) || strings.ContainsAny(decoded, codec.GenDelims) {
		return netip.Addr{}, zoneError("invalid zone identifier")
	}
	if !isLinkLocal(a) {
		return netip.Addr{}, zoneError("zone identifier on a non link-local address")
	}
	return a.WithZone(decoded), nil
}

// isLinkLocal reports whether a is in fe80::/10.
func isLinkLocal(a netip.Addr) bool {
	b := a.As16()
	return b[0] == 0xfe && b[1]&0xc0 == 0x80
}

func classifyName(raw string, conv Converter) (Classification, error) {
	for i := 0; i < len(raw); i++ {
		if invalidHostSet.Contains(raw[i]) {
			return Classification{}, uri.Syntaxf("host %q: invalid character %q", raw, raw[i])
		}
	}
	if codec.HasBareEscape(raw) {
		return Classification{}, uri.Syntaxf("host %q: invalid percent-encoding", raw)
	}
	decoded := codec.DecodeAll(raw)
	if codec.IsASCII(decoded) {
		lower := strings.ToLower(decoded)
		if !isDomainName(lower) {
			return Classification{Kind: KindRegName, Host: codec.EscapeAll(lower, regNameSet)}, nil
		}
		if strings.Contains(lower, acePrefix) {
			if _, err := conv.ToUnicode(lower); err != nil {
				return Classification{}, err
			}
		}
		return Classification{Kind: KindDomain, Host: lower}, nil
	}
	if !utf8.ValidString(decoded) {
		return Classification{}, uri.Syntaxf("host %q: invalid UTF-8 sequence", raw)
	}
	ascii, err := conv.ToASCII(decoded)
	if err != nil {
		return Classification{}, err
	}
	if !isDomainName(ascii) {
		return Classification{}, uri.Syntaxf("host %q: invalid domain name", raw)
	}
	return Classification{Kind: KindDomain, Host: ascii}, nil
}

// isDomainName applies the RFC 1123 length rules to a lowercased ASCII
// registered name. Only the final label may be empty, marking the root.
func isDomainName(s string) bool {
	limit := maxDomainLength
	if strings.HasSuffix(s, ".") {
		limit++
	}
	if len(s) > limit {
		return false
	}
	labels := strings.Split(strings.TrimSuffix(s, "."), ".")
	if len(labels) > maxLabels {
		return false
	}
	for _, label := range labels {
		if label == "" || len(label) > maxLabelLength {
			return false
		}
		for i := 0; i < len(label); i++ {
			if !regNameSet.Contains(label[i]) {
				return false
			}
		}
	}
	return true
}

// Host is an immutable URI host. The zero value is the absent host.
type Host struct {
	raw     string
	present bool
	c       Classification
	conv    Converter
}

// New parses raw into a Host.
func New(raw string, opts ...Option) (Host, error) {
	o := newOptions(opts)
	c, err := classify(raw, o.conv)
	if err != nil {
		return Host{}, err
	}
	return Host{raw: c.Host, present: true, c: c, conv: o.conv}, nil
}

// NewAbsent returns the undefined host.
func NewAbsent() Host { return Host{} }

// From coerces v to a string and parses it. A nil v is the absent host.
func From(v any, opts ...Option) (Host, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil {
		return Host{}, err
	}
	if !ok {
		return NewAbsent(), nil
	}
	return New(s, opts...)
}

// FromIP builds a host from an IP address. A version other than "", "4" or
// "6" builds an IPvFuture literal.
func FromIP(ip, version string) (Host, error) {
	if version != "" && version != "4" && version != "6" {
		return New("[v" + version + "." + ip + "]")
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return Host{}, uri.Syntaxf("%q is not a valid IP address", ip)
	}
	if (version == "4" && !addr.Is4()) || (version == "6" && !addr.Is6()) {
		return Host{}, uri.Syntaxf("%q is not an IPv%s address", ip, version)
	}
	return FromNetIP(addr)
}

// FromNetIP builds a host from addr. The zone, if any, is percent-encoded.
func FromNetIP(addr netip.Addr) (Host, error) {
	if !addr.IsValid() {
		return Host{}, uri.Syntaxf("invalid IP address")
	}
	if addr.Is4() {
		return New(addr.String())
	}
	lit := addr.WithZone("").String()
	if zone := addr.Zone(); zone != "" {
		lit += "%25" + codec.EscapeAll(zone, codec.UnreservedSet)
	}
	return New("[" + lit + "]")
}

// Value returns the host and whether it is defined.
func (h Host) Value() (string, bool) { return h.raw, h.present }

func (h Host) String() string { return h.raw }

// URIComponent returns the host as it appears in a URI.
func (h Host) URIComponent() string { return h.raw }

// Kind returns the host classification.
func (h Host) Kind() Kind { return h.c.Kind }

// IPVersion returns "4", "6", the IPvFuture version, or "" for non-IP hosts.
func (h Host) IPVersion() string { return h.c.Version }

// IP returns the address without brackets. The IPvFuture address is the part
// following the version. Non-IP hosts return "".
func (h Host) IP() string {
	switch h.c.Kind {
	case KindIPv4:
		return h.raw
	case KindIPv6:
		return h.raw[1 : len(h.raw)-1]
	case KindIPvFuture:
		_, ip, _ := strings.Cut(h.raw[1:len(h.raw)-1], ".")
		return ip
	default:
		return ""
	}
}

// Addr returns the IP address of an IPv4 or IPv6 host, the zone decoded.
func (h Host) Addr() (netip.Addr, bool) {
	switch h.c.Kind {
	case KindIPv4:
		return netip.MustParseAddr(h.raw), true
	case KindIPv6:
		addr, zone, hasZone, _ := splitZone(h.IP())
		a, err := parseIPv6(addr, zone, hasZone)
		return a, err == nil
	default:
		return netip.Addr{}, false
	}
}

func (h Host) IsIP() bool {
	return h.c.Kind == KindIPv4 || h.c.Kind == KindIPv6 || h.c.Kind == KindIPvFuture
}

func (h Host) IsIPv4() bool { return h.c.Kind == KindIPv4 }

func (h Host) IsIPv6() bool { return h.c.Kind == KindIPv6 }

func (h Host) IsIPvFuture() bool { return h.c.Kind == KindIPvFuture }

func (h Host) IsDomain() bool { return h.c.Kind == KindDomain }

func (h Host) IsAbsent() bool { return !h.present }

func (h Host) HasZoneIdentifier() bool { return h.c.Zone }

// IsRegisteredName reports whether the host is a defined non-IP host. Domain
// names are registered names.
func (h Host) IsRegisteredName() bool { return h.present && !h.IsIP() }

// WithoutZoneIdentifier returns the host with its IPv6 zone removed.
func (h Host) WithoutZoneIdentifier() Host {
	if !h.c.Zone {
		return h
	}
	addr, _, _ := strings.Cut(h.IP(), "%")
	nh, err := New("["+addr+"]", WithConverter(h.converter()))
	if err != nil {
		return h
	}
	return nh
}

// ToASCII returns the stored host, which is ASCII by construction.
func (h Host) ToASCII() string { return h.raw }

// ToUnicode returns the host with its IDNA labels converted to Unicode.
func (h Host) ToUnicode() string {
	if h.c.Kind != KindDomain || !strings.Contains(h.raw, acePrefix) {
		return h.raw
	}
	s, err := h.converter().ToUnicode(h.raw)
	if err != nil {
		return h.raw
	}
	return s
}

// WithContent returns a host holding v. The receiver is returned when the
// content is unchanged.
func (h Host) WithContent(v any) (Host, error) {
	nh, err := From(v, WithConverter(h.converter()))
	if err != nil {
		return Host{}, err
	}
	if nh.Equal(h) {
		return h, nil
	}
	return nh, nil
}

// Equal reports whether both hosts hold the same value.
func (h Host) Equal(o Host) bool {
	return h.present == o.present && h.raw == o.raw
}

func (h Host) converter() Converter {
	if h.conv == nil {
		return IDNA
	}
	return h.conv
}

var _ uri.Component = Host{}
