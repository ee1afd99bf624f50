// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"net/netip"
	"testing"

	"github.com/google/uricomponents/pkg/uri"
	"github.com/pkg/errors"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"example.com", false},
		{"bébé", false},
		{"foo\x00bar", true},
		{"foo\tbar", true},
		{"foo\x7f", true},
	}
	for _, tt := range tests {
		err := Filter(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Filter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, uri.ErrSyntax) {
			t.Errorf("Filter(%q) error = %v, want ErrSyntax", tt.input, err)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		preserve Set
		expected string
	}{
		{"no escapes", "abc", ReservedSet, "abc"},
		{"unreserved decoded", "%7e%41", ReservedSet, "~A"},
		{"reserved kept uppercased", "a%2fb%3a", ReservedSet, "a%2Fb%3A"},
		{"percent kept", "100%25", ReservedSet, "100%25"},
		{"utf-8 decoded", "b%C3%A9b%C3%A9", ReservedSet, "bébé"},
		{"invalid escape untouched", "%zz%4", ReservedSet, "%zz%4"},
		{"decode all", "a%2Fb%25%20", Set{}, "a/b% "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input, tt.preserve); got != tt.expected {
				t.Errorf("Decode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	pchar := NewSet(Unreserved, SubDelims, ":@")
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"allowed kept", "a:b@c!", "a:b@c!"},
		{"space and slash escaped", "a b/c", "a%20b%2Fc"},
		{"triplet kept and uppercased", "%7e%2f", "%7E%2F"},
		{"bare percent escaped", "100%", "100%25"},
		{"incomplete triplet escaped", "%4g", "%254g"},
		{"utf-8 escaped", "é", "%C3%A9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.input, pchar)
			if got != tt.expected {
				t.Errorf("Encode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if again := Encode(got, pchar); again != got {
				t.Errorf("Encode is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestEscapeAll(t *testing.T) {
	if got, want := EscapeAll("%41 b", UnreservedSet), "%2541%20b"; got != want {
		t.Errorf("EscapeAll() = %q, want %q", got, want)
	}
}

func TestRFC1738(t *testing.T) {
	if got, want := ToRFC1738("a%20b+c~d"), "a+b%2Bc%7Ed"; got != want {
		t.Errorf("ToRFC1738() = %q, want %q", got, want)
	}
	if got, want := FromRFC1738("a+b%2B"), "a%20b%2B"; got != want {
		t.Errorf("FromRFC1738() = %q, want %q", got, want)
	}
}

func TestHasBareEscape(t *testing.T) {
	for input, want := range map[string]bool{"": false, "%41": false, "a%": true, "%4": true, "%g1": true} {
		if got := HasBareEscape(input); got != want {
			t.Errorf("HasBareEscape(%q) = %v, want %v", input, got, want)
		}
	}
}

type component struct {
	v  string
	ok bool
}

func (c component) Value() (string, bool) { return c.v, c.ok }
func (c component) String() string        { return c.v }
func (c component) URIComponent() string  { return c.v }

func TestStringify(t *testing.T) {
	s := "ptr"
	tests := []struct {
		name    string
		input   any
		want    string
		wantOK  bool
		wantErr bool
	}{
		{"nil", nil, "", false, false},
		{"string", "foo", "foo", true, false},
		{"empty string", "", "", true, false},
		{"string pointer", &s, "ptr", true, false},
		{"nil string pointer", (*string)(nil), "", false, false},
		{"bytes", []byte("bar"), "bar", true, false},
		{"true", true, "1", true, false},
		{"false", false, "0", true, false},
		{"int", -42, "-42", true, false},
		{"uint16", uint16(8080), "8080", true, false},
		{"float", 1.5, "1.5", true, false},
		{"stringer", netip.MustParseAddr("127.0.0.1"), "127.0.0.1", true, false},
		{"absent component", component{"", false}, "", false, false},
		{"component", component{"x", true}, "x", true, false},
		{"struct", struct{}{}, "", false, true},
		{"slice", []string{"a"}, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Stringify(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Stringify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, uri.ErrType) {
					t.Errorf("Stringify() error = %v, want ErrType", err)
				}
				return
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Stringify() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
