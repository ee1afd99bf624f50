// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package domaincmd

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uricomponents/pkg/uri/domain"
)

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing domain", Config{Format: "yaml"}, true},
		{"bad index", Config{Domain: "a.b", WithoutLabels: "1,x", Format: "yaml"}, true},
		{"valid config", Config{Domain: "a.b", WithoutLabels: "0, -1", Format: "yaml"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected *Output
	}{
		{
			name:     "labels",
			cfg:      Config{Domain: "WWW.Example.com."},
			expected: &Output{Domain: "www.example.com.", Absolute: true, Labels: []string{"", "com", "example", "www"}},
		},
		{
			name: "edits and suffix",
			cfg:  Config{Domain: "www.example.co.uk", WithoutLabels: "-1", Prepend: "api", Suffix: true},
			expected: &Output{
				Domain: "api.example.co.uk",
				Labels: []string{"uk", "co", "example", "api"},
				Suffix: &domain.Info{PublicSuffix: "co.uk", RegistrableDomain: "example.co.uk", SubDomain: "api", ICANN: true},
			},
		},
		{
			name:     "sub-domain",
			cfg:      Config{Domain: "www.example.com", SubDomain: "mail.eu"},
			expected: &Output{Domain: "mail.eu.example.com", Labels: []string{"com", "example", "eu", "mail"}},
		},
		{
			name:     "unicode",
			cfg:      Config{Domain: "bébé.be", Append: "example"},
			expected: &Output{Domain: "xn--bb-bjab.be.example", Unicode: "bébé.be.example", Labels: []string{"example", "be", "xn--bb-bjab"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			deps, _ := InitDeps(context.Background())
			got, err := Handler(context.Background(), tc.cfg, deps)
			if err != nil {
				t.Fatalf("Handler() failed: %v", err)
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Handler() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandlerErrors(t *testing.T) {
	deps, _ := InitDeps(context.Background())
	for name, cfg := range map[string]Config{
		"not a domain":       {Domain: "[::1]"},
		"remove every label": {Domain: "example.com", WithoutLabels: "0,1"},
		"no registrable":     {Domain: "co.uk", SubDomain: "www"},
	} {
		if _, err := Handler(context.Background(), cfg, deps); err == nil {
			t.Errorf("Handler(%s) succeeded", name)
		}
	}
}
