// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"strings"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
	"github.com/google/uricomponents/pkg/uri/host"
)

// Authority is the "[userinfo@]host[:port]" part of a URI. It is absent
// when its host is absent.
type Authority struct {
	userInfo UserInfo
	host     host.Host
	port     Port
}

// NewAuthority assembles an authority from its parts. The user
// information and the port require a host.
func NewAuthority(h host.Host, p Port, ui UserInfo) (Authority, error) {
	if h.IsAbsent() && (!p.IsAbsent() || !ui.IsAbsent()) {
		return Authority{}, uri.Syntaxf("user information or port without a host")
	}
	return Authority{userInfo: ui, host: h, port: p}, nil
}

// ParseAuthority splits s into its user information, host and port.
// An empty port is treated as absent.
func ParseAuthority(s string, opts ...host.Option) (Authority, error) {
	if err := codec.Filter(s); err != nil {
		return Authority{}, err
	}
	var ui UserInfo
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		var err error
		if ui, err = ParseUserInfo(s[:i]); err != nil {
			return Authority{}, err
		}
		s = s[i+1:]
	}
	hs, ps := s, ""
	if strings.HasPrefix(s, "[") {
		j := strings.IndexByte(s, ']')
		if j < 0 {
			return Authority{}, uri.Syntaxf("unterminated IP literal in %q", s)
		}
		hs, ps = s[:j+1], s[j+1:]
		if ps != "" && ps[0] != ':' {
			return Authority{}, uri.Syntaxf("unexpected %q after the IP literal", ps)
		}
		ps = strings.TrimPrefix(ps, ":")
	} else if k := strings.LastIndexByte(s, ':'); k >= 0 {
		hs, ps = s[:k], s[k+1:]
	}
	h, err := host.New(hs, opts...)
	if err != nil {
		return Authority{}, err
	}
	var p Port
	if ps != "" {
		if p, err = ParsePort(ps); err != nil {
			return Authority{}, err
		}
	}
	return NewAuthority(h, p, ui)
}

// NewAuthorityFrom coerces v to a string and parses it. A nil v is the
// absent authority.
func NewAuthorityFrom(v any, opts ...host.Option) (Authority, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil || !ok {
		return Authority{}, err
	}
	return ParseAuthority(s, opts...)
}

func (a Authority) Host() host.Host { return a.host }

func (a Authority) Port() Port { return a.port }

func (a Authority) UserInfo() UserInfo { return a.userInfo }

// Value returns the encoded authority and whether it is defined.
func (a Authority) Value() (string, bool) {
	if a.host.IsAbsent() {
		return "", false
	}
	return a.userInfo.URIComponent() + a.host.String() + a.port.URIComponent(), true
}

func (a Authority) String() string {
	s, _ := a.Value()
	return s
}

// URIComponent returns the authority preceded by "//" when defined.
func (a Authority) URIComponent() string {
	s, ok := a.Value()
	if !ok {
		return ""
	}
	return "//" + s
}

// IsAbsent reports whether the authority is undefined.
func (a Authority) IsAbsent() bool { return a.host.IsAbsent() }

// Equal reports whether both authorities hold the same parts.
func (a Authority) Equal(o Authority) bool {
	return a.host.Equal(o.host) && a.port == o.port && a.userInfo == o.userInfo
}

func (a Authority) with(h host.Host, p Port, ui UserInfo) (Authority, error) {
	na, err := NewAuthority(h, p, ui)
	if err != nil {
		return Authority{}, err
	}
	if na.Equal(a) {
		return a, nil
	}
	return na, nil
}

// WithHost returns the authority with its host replaced by v.
func (a Authority) WithHost(v any) (Authority, error) {
	h, err := host.From(v)
	if err != nil {
		return Authority{}, err
	}
	return a.with(h, a.port, a.userInfo)
}

// WithPort returns the authority with its port replaced by v.
func (a Authority) WithPort(v any) (Authority, error) {
	p, err := NewPortFrom(v)
	if err != nil {
		return Authority{}, err
	}
	return a.with(a.host, p, a.userInfo)
}

// WithUserInfo returns the authority with its user information replaced.
func (a Authority) WithUserInfo(user, pass any) (Authority, error) {
	ui, err := NewUserInfo(user, pass)
	if err != nil {
		return Authority{}, err
	}
	return a.with(a.host, a.port, ui)
}

// WithContent returns the authority parsed from v.
func (a Authority) WithContent(v any) (Authority, error) {
	na, err := NewAuthorityFrom(v)
	if err != nil {
		return Authority{}, err
	}
	if na.Equal(a) {
		return a, nil
	}
	return na, nil
}

var _ uri.Component = Authority{}
