// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"strings"

	"github.com/google/uricomponents/internal/codec"
	"github.com/google/uricomponents/pkg/uri"
)

// UserInfo is the user information of an authority, a user optionally
// followed by ":" and a password.
type UserInfo struct {
	user    string
	pass    string
	hasPass bool
	present bool
}

// ParseUserInfo splits s on its first ":" and encodes both parts.
func ParseUserInfo(s string) (UserInfo, error) {
	user, pass, hasPass := strings.Cut(s, ":")
	if !hasPass {
		return NewUserInfo(user, nil)
	}
	return NewUserInfo(user, pass)
}

// NewUserInfo builds the user information from a user and an optional
// password. A nil user is the absent user information and requires a nil
// password.
func NewUserInfo(user, pass any) (UserInfo, error) {
	u, uok, err := codec.Stringify(user)
	if err != nil {
		return UserInfo{}, err
	}
	p, pok, err := codec.Stringify(pass)
	if err != nil {
		return UserInfo{}, err
	}
	if !uok {
		if pok {
			return UserInfo{}, uri.Syntaxf("a password requires a user")
		}
		return UserInfo{}, nil
	}
	ui := UserInfo{present: true, hasPass: pok}
	if ui.user, err = encode(u, userSet); err != nil {
		return UserInfo{}, err
	}
	if ui.pass, err = encode(p, passSet); err != nil {
		return UserInfo{}, err
	}
	return ui, nil
}

// NewUserInfoFrom coerces v to a string and parses it.
func NewUserInfoFrom(v any) (UserInfo, error) {
	s, ok, err := codec.Stringify(v)
	if err != nil || !ok {
		return UserInfo{}, err
	}
	return ParseUserInfo(s)
}

// User returns the encoded user and whether it is defined.
func (u UserInfo) User() (string, bool) { return u.user, u.present }

// Pass returns the encoded password and whether it is defined.
func (u UserInfo) Pass() (string, bool) { return u.pass, u.hasPass }

// Value returns the encoded user information and whether it is defined.
func (u UserInfo) Value() (string, bool) {
	if !u.present {
		return "", false
	}
	if !u.hasPass {
		return u.user, true
	}
	return u.user + ":" + u.pass, true
}

// Decoded returns the user information with the user and the password
// decoded separately.
func (u UserInfo) Decoded() (string, bool) {
	if !u.present {
		return "", false
	}
	s := codec.DecodeAll(u.user)
	if u.hasPass {
		s += ":" + codec.DecodeAll(u.pass)
	}
	return s, true
}

func (u UserInfo) String() string {
	s, _ := u.Value()
	return s
}

// URIComponent returns the user information followed by "@" when defined.
func (u UserInfo) URIComponent() string {
	if !u.present {
		return ""
	}
	return u.String() + "@"
}

// IsAbsent reports whether the user information is undefined.
func (u UserInfo) IsAbsent() bool { return !u.present }

// WithUserInfo returns the user information holding user and pass.
func (u UserInfo) WithUserInfo(user, pass any) (UserInfo, error) {
	nu, err := NewUserInfo(user, pass)
	if err != nil {
		return UserInfo{}, err
	}
	if nu == u {
		return u, nil
	}
	return nu, nil
}

// WithContent returns the user information parsed from v.
func (u UserInfo) WithContent(v any) (UserInfo, error) {
	nu, err := NewUserInfoFrom(v)
	if err != nil {
		return UserInfo{}, err
	}
	if nu == u {
		return u, nil
	}
	return nu, nil
}

var _ uri.Decodable = UserInfo{}
