// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"testing"

	"github.com/google/uricomponents/pkg/uri"
	"github.com/pkg/errors"
)

func mustDataPath(t *testing.T, s string) DataPath {
	t.Helper()
	d, err := ParseDataPath(s)
	if err != nil {
		t.Fatalf("ParseDataPath(%q) failed: %v", s, err)
	}
	return d
}

func TestParseDataPath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		mimeType  string
		params    string
		mediaType string
		binary    bool
		data      string
	}{
		{"default", "", "text/plain;charset=us-ascii,", "text/plain", "charset=us-ascii", "text/plain;charset=us-ascii", false, ""},
		{"no media type", ",abc", "text/plain;charset=us-ascii,abc", "text/plain", "charset=us-ascii", "text/plain;charset=us-ascii", false, "abc"},
		{"parameters", "text/plain;charset=utf-8,Hello%20World", "text/plain;charset=utf-8,Hello%20World", "text/plain", "charset=utf-8", "text/plain;charset=utf-8", false, "Hello%20World"},
		{"binary", "image/PNG;base64,iVBORw0KGgo=", "image/png;base64,iVBORw0KGgo=", "image/png", "", "image/png", true, "iVBORw0KGgo="},
		{"structured suffix", "application/ld+json,{}", "application/ld+json,%7B%7D", "application/ld+json", "", "application/ld+json", false, "%7B%7D"},
		{"comma in data", "text/csv,a,b", "text/csv,a,b", "text/csv", "", "text/csv", false, "a,b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := mustDataPath(t, tc.input)
			if v, ok := d.Value(); v != tc.expected || !ok {
				t.Errorf("Value() = (%q, %v), want %q", v, ok, tc.expected)
			}
			if d.MimeType() != tc.mimeType {
				t.Errorf("MimeType() = %q, want %q", d.MimeType(), tc.mimeType)
			}
			if d.Parameters() != tc.params {
				t.Errorf("Parameters() = %q, want %q", d.Parameters(), tc.params)
			}
			if d.MediaType() != tc.mediaType {
				t.Errorf("MediaType() = %q, want %q", d.MediaType(), tc.mediaType)
			}
			if d.IsBinaryData() != tc.binary {
				t.Errorf("IsBinaryData() = %v, want %v", d.IsBinaryData(), tc.binary)
			}
			if d.Data() != tc.data {
				t.Errorf("Data() = %q, want %q", d.Data(), tc.data)
			}
		})
	}
}

func TestParseDataPathErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no data separator", "text/plain"},
		{"invalid mime type", "text;charset=utf-8,a"},
		{"parameter without value", "text/plain;charset,a"},
		{"reserved parameter", "text/plain;base64=1,a"},
		{"invalid base64", "text/plain;base64,@@@"},
		{"base64 padding", "text/plain;base64,YQ"},
		{"control character", "text/plain,\x01"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDataPath(tc.input); !errors.Is(err, uri.ErrSyntax) {
				t.Errorf("ParseDataPath(%q) error = %v, want ErrSyntax", tc.input, err)
			}
		})
	}
}

func TestDataPathConversion(t *testing.T) {
	text := mustDataPath(t, "text/plain;charset=us-ascii,Hello%20World")
	bin := text.ToBinary()
	if bin.String() != "text/plain;charset=us-ascii;base64,SGVsbG8gV29ybGQ=" {
		t.Errorf("ToBinary() = %q", bin.String())
	}
	if back := bin.ToASCII(); !back.Equal(text) {
		t.Errorf("ToASCII() = %q, want %q", back.String(), text.String())
	}
	if same := text.ToASCII(); !same.Equal(text) {
		t.Errorf("ToASCII() on text data = %q", same.String())
	}
	if same := bin.ToBinary(); !same.Equal(bin) {
		t.Errorf("ToBinary() on binary data = %q", same.String())
	}
	if d, _ := text.Decoded(); d != "text/plain;charset=us-ascii,Hello World" {
		t.Errorf("Decoded() = %q", d)
	}
}

func TestDataPathParameters(t *testing.T) {
	bin := mustDataPath(t, "text/plain;charset=us-ascii;base64,SGVsbG8=")
	tests := []struct {
		name     string
		params   string
		expected string
	}{
		{"replace", "charset=utf-8", "text/plain;charset=utf-8;base64,SGVsbG8="},
		{"several", "charset=utf-8;format=flowed", "text/plain;charset=utf-8;format=flowed;base64,SGVsbG8="},
		{"remove", "", "text/plain;base64,SGVsbG8="},
		{"unchanged", "charset=us-ascii", "text/plain;charset=us-ascii;base64,SGVsbG8="},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := bin.WithParameters(tc.params)
			if err != nil {
				t.Fatalf("WithParameters(%q) failed: %v", tc.params, err)
			}
			if got.String() != tc.expected {
				t.Errorf("WithParameters(%q) = %q, want %q", tc.params, got.String(), tc.expected)
			}
		})
	}
	for _, params := range []string{"base64", "charset", "a=b,c"} {
		if _, err := bin.WithParameters(params); !errors.Is(err, uri.ErrSyntax) {
			t.Errorf("WithParameters(%q) error = %v, want ErrSyntax", params, err)
		}
	}
}

func TestDataPathContent(t *testing.T) {
	var zero DataPath
	if zero.String() != "text/plain;charset=us-ascii," {
		t.Errorf("zero value = %q, want the default path", zero.String())
	}
	d, err := zero.WithContent(nil)
	if err != nil || !d.Equal(zero) {
		t.Errorf("WithContent(nil) = (%q, %v), want the default path", d.String(), err)
	}
	d, err = zero.WithContent("image/gif;base64,R0lGODlh")
	if err != nil || d.MimeType() != "image/gif" {
		t.Errorf("WithContent(gif) = (%q, %v)", d.String(), err)
	}
	if _, err := zero.WithContent(1.5); !errors.Is(err, uri.ErrSyntax) {
		t.Errorf("WithContent(1.5) error = %v, want ErrSyntax", err)
	}
}
