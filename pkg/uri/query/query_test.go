// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uricomponents/pkg/uri"
	"github.com/pkg/errors"
)

func mustParse(t *testing.T, s string) Query {
	t.Helper()
	q, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return q
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Pair
	}{
		{"ordered duplicates", "a=1&b=2&a=3", []Pair{KV("a", "1"), KV("b", "2"), KV("a", "3")}},
		{"empty key dropped", "=toto&foo=bar", []Pair{KV("foo", "bar")}},
		{"empty tokens dropped", "foo=bar&&&=&&&&&&", []Pair{KV("foo", "bar")}},
		{"empty query", "", []Pair{KeyOnly("")}},
		{"key only", "a&b=", []Pair{KeyOnly("a"), KV("b", "")}},
		{"split on first equal", "a=b=c", []Pair{KV("a", "b=c")}},
		{"decoded", "a%20b=c+d%26e", []Pair{KV("a b", "c+d&e")}},
		{"utf-8", "caf%C3%A9=%E2%82%AC", []Pair{KV("café", "€")}},
		{"encoded space key kept", "%20=x", []Pair{KV(" ", "x")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := mustParse(t, tc.input)
			if diff := cmp.Diff(tc.expected, q.Pairs()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   string
	}{
		{"equal separator", "a=b", "="},
		{"empty separator", "a=b", ""},
		{"long separator", "a=b", "&&"},
		{"control separator", "a=b", "\n"},
		{"control character", "a=\x00", "&"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseWith(tc.input, tc.sep, EncodingRFC3986); !errors.Is(err, uri.ErrSyntax) {
				t.Errorf("ParseWith(%q, %q) error = %v, want ErrSyntax", tc.input, tc.sep, err)
			}
		})
	}
	if _, err := From(struct{}{}); !errors.Is(err, uri.ErrType) {
		t.Errorf("From(struct{}{}) error = %v, want ErrType", err)
	}
}

func TestGet(t *testing.T) {
	q := mustParse(t, "a=1&b=2&a=3&c")
	if v, ok := q.Get("a"); v != "1" || !ok {
		t.Errorf("Get(a) = (%q, %v), want (1, true)", v, ok)
	}
	if v, ok := q.Get("c"); v != "" || ok {
		t.Errorf("Get(c) = (%q, %v), want (\"\", false)", v, ok)
	}
	if v, ok := q.Get("z"); v != "" || ok {
		t.Errorf("Get(z) = (%q, %v), want (\"\", false)", v, ok)
	}
	if diff := cmp.Diff([]string{"1", "3"}, q.GetAll("a")); diff != "" {
		t.Errorf("GetAll(a) mismatch (-want +got):\n%s", diff)
	}
	if !q.Has("a", "c") || q.Has("a", "z") {
		t.Errorf("Has() reports wrong presence")
	}
	if q.Len() != 4 {
		t.Errorf("Len() = %d, want 4", q.Len())
	}
	var keys []string
	for p := range q.All() {
		keys = append(keys, p.Key)
	}
	if diff := cmp.Diff([]string{"a", "b", "a", "c"}, keys); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		rfc3986 string
		rfc1738 string
		absent  bool
		uriComp string
	}{
		{"absent", Query{}, "", "", true, ""},
		{"empty", FromPairs(KeyOnly("")), "", "", false, "?"},
		{"empty key kept", FromPairs(KV("", "toto"), KV("foo", "bar")), "=toto&foo=bar", "=toto&foo=bar", false, "?=toto&foo=bar"},
		{"space and plus", FromPairs(KV("a b", "c+d")), "a%20b=c+d", "a+b=c%2Bd", false, "?a%20b=c+d"},
		{"tilde", FromPairs(KV("a", "~")), "a=~", "a=%7E", false, "?a=~"},
		{"equal in key", FromPairs(KV("a=b", "c=d")), "a%3Db=c=d", "a%3Db=c=d", false, "?a%3Db=c=d"},
		{"separator escaped", FromPairs(KV("a&b", "c&d")), "a%26b=c%26d", "a%26b=c%26d", false, "?a%26b=c%26d"},
		{"allowed delimiters", FromPairs(KV("a:@/?", "!$'()*,;")), "a:@/?=!$'()*,;", "a:@/?=!$'()*,;", false, "?a:@/?=!$'()*,;"},
		{"brackets and hash", FromPairs(KV("a[]", "#")), "a%5B%5D=%23", "a%5B%5D=%23", false, "?a%5B%5D=%23"},
		{"utf-8", FromPairs(KV("café", "€")), "caf%C3%A9=%E2%82%AC", "caf%C3%A9=%E2%82%AC", false, "?caf%C3%A9=%E2%82%AC"},
		{"key only", FromPairs(KeyOnly("a"), KV("b", "")), "a&b=", "a&b=", false, "?a&b="},
		{"literal percent", FromPairs(KV("a", "100%41"), KV("%", "%20")), "a=100%2541&%25=%2520", "a=100%2541&%25=%2520", false, "?a=100%2541&%25=%2520"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := tc.query.RFC3986()
			if s != tc.rfc3986 || ok == tc.absent {
				t.Errorf("RFC3986() = (%q, %v), want %q", s, ok, tc.rfc3986)
			}
			s, ok = tc.query.RFC1738()
			if s != tc.rfc1738 || ok == tc.absent {
				t.Errorf("RFC1738() = (%q, %v), want %q", s, ok, tc.rfc1738)
			}
			if tc.query.String() != tc.rfc3986 {
				t.Errorf("String() = %q, want %q", tc.query.String(), tc.rfc3986)
			}
			if tc.query.URIComponent() != tc.uriComp {
				t.Errorf("URIComponent() = %q, want %q", tc.query.URIComponent(), tc.uriComp)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, input := range []string{"a=1&b=2&a=3", "a%20b=c+d", "a%26b=c%26d", "a&b=", "caf%C3%A9=%E2%82%AC", "a=%2541", "%25=%2520", ""} {
		q := mustParse(t, input)
		if q.String() != input {
			t.Errorf("Parse(%q).String() = %q", input, q.String())
		}
		again := mustParse(t, q.String())
		if !again.Equal(q) {
			t.Errorf("re-parse of %q: %v, want %v", input, again.Pairs(), q.Pairs())
		}
	}
	escaped := mustParse(t, "a=%2541")
	if v, _ := escaped.Get("a"); v != "%41" {
		t.Errorf("Get(a) = %q, want %%41", v)
	}
	if again := mustParse(t, escaped.String()); !again.Equal(escaped) {
		t.Errorf("re-parse of a=%%2541: %v, want %v", again.Pairs(), escaped.Pairs())
	}
	form, err := ParseRFC1738("a+b=c%2Bd")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Pair{KV("a b", "c+d")}, form.Pairs()); diff != "" {
		t.Errorf("ParseRFC1738() mismatch (-want +got):\n%s", diff)
	}
	if s, _ := form.RFC1738(); s != "a+b=c%2Bd" {
		t.Errorf("RFC1738() = %q, want a+b=c%%2Bd", s)
	}
}

func TestSeparator(t *testing.T) {
	q, err := ParseWith("a=b|c=d", "|", EncodingRFC3986)
	if err != nil {
		t.Fatal(err)
	}
	if q.String() != "a=b|c=d" || q.Separator() != "|" {
		t.Errorf("String() = %q with separator %q, want a=b|c=d", q.String(), q.Separator())
	}
	amp, err := q.WithSeparator("&")
	if err != nil {
		t.Fatal(err)
	}
	if amp.String() != "a=b&c=d" {
		t.Errorf("WithSeparator(&).String() = %q, want a=b&c=d", amp.String())
	}
	semi, err := FromPairs(KV("a&b", "c;d")).WithSeparator(";")
	if err != nil {
		t.Fatal(err)
	}
	if semi.String() != "a&b=c%3Bd" {
		t.Errorf("String() = %q, want a&b=c%%3Bd", semi.String())
	}
	if same, _ := amp.WithSeparator("&"); !same.Equal(amp) {
		t.Errorf("WithSeparator(&) changed the query")
	}
	if _, err := q.WithSeparator("="); !errors.Is(err, uri.ErrSyntax) {
		t.Errorf("WithSeparator(=) error = %v, want ErrSyntax", err)
	}
}

func TestNoEncoding(t *testing.T) {
	q, err := ParseWith("a=%20&b c=d", "&", EncodingNone)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Pair{KV("a", "%20"), KV("b c", "d")}, q.Pairs()); diff != "" {
		t.Errorf("ParseWith() mismatch (-want +got):\n%s", diff)
	}
	if s, _ := q.Decoded(); s != "a=%20&b c=d" {
		t.Errorf("Decoded() = %q", s)
	}
	if s, _ := q.Encode(EncodingNone); s != "a=%20&b c=d" {
		t.Errorf("Encode(none) = %q", s)
	}
}

func TestAbsentAndEmpty(t *testing.T) {
	absent, err := From(nil)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := absent.Value(); v != "" || ok || !absent.IsAbsent() {
		t.Errorf("From(nil).Value() = (%q, %v), want absent", v, ok)
	}
	empty := mustParse(t, "")
	if v, ok := empty.Value(); v != "" || !ok {
		t.Errorf("Parse(\"\").Value() = (%q, %v), want present", v, ok)
	}
	if got := empty.WithoutEmptyPairs(); !got.IsAbsent() {
		t.Errorf("WithoutEmptyPairs() on the empty query = %v, want absent", got.Pairs())
	}
}

func TestParseEncoding(t *testing.T) {
	for name, want := range map[string]Encoding{"": EncodingRFC3986, "RFC3986": EncodingRFC3986, "rfc1738": EncodingRFC1738, "form": EncodingRFC1738, "none": EncodingNone} {
		got, err := ParseEncoding(name)
		if err != nil || got != want {
			t.Errorf("ParseEncoding(%q) = (%v, %v), want %v", name, got, err, want)
		}
		if got.String() != want.String() {
			t.Errorf("String() = %q, want %q", got.String(), want.String())
		}
	}
	if _, err := ParseEncoding("base64"); !errors.Is(err, uri.ErrSyntax) {
		t.Errorf("ParseEncoding(base64) error = %v, want ErrSyntax", err)
	}
}
