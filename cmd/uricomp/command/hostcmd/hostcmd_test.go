// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package hostcmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uricomponents/internal/cli"
)

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing hosts", Config{Format: "yaml"}, true},
		{"bad format", Config{Hosts: []string{"a"}, Format: "xml"}, true},
		{"valid config", Config{Hosts: []string{"a"}, Format: "json"}, false},
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

func TestInspect(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		ipv4   bool
		expect Report
	}{
		{"domain", "Example.COM", false, Report{Input: "Example.COM", Host: "example.com", Kind: "domain"}},
		{"idn", "bébé.be", false, Report{Input: "bébé.be", Host: "xn--bb-bjab.be", Kind: "domain", Unicode: "bébé.be"}},
		{"ipv4", "127.0.0.1", false, Report{Input: "127.0.0.1", Host: "127.0.0.1", Kind: "ipv4", IPVersion: "4", IP: "127.0.0.1"}},
		{"ipv6 with zone", "[fe80::1%25eth0]", false, Report{Input: "[fe80::1%25eth0]", Host: "[fe80::1%25eth0]", Kind: "ipv6", IPVersion: "6", IP: "fe80::1%25eth0", Zone: true}},
		{"numeric domain", "0x7f.1", false, Report{Input: "0x7f.1", Host: "0x7f.1", Kind: "domain"}},
		{"numeric domain normalized", "0x7f.1", true, Report{Input: "0x7f.1", Host: "127.0.0.1", Kind: "ipv4", IPVersion: "4", IP: "127.0.0.1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Inspect(tc.input, tc.ipv4)
			if err != nil {
				t.Fatalf("Inspect(%q) failed: %v", tc.input, err)
			}
			if diff := cmp.Diff(tc.expect, got); diff != "" {
				t.Errorf("Inspect(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
	if _, err := Inspect("a b", false); err == nil {
		t.Error("Inspect(a b) succeeded")
	}
}

func TestCommand(t *testing.T) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "json", "EXAMPLE.org"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	want := `{
  "hosts": [
    {
      "input": "EXAMPLE.org",
      "host": "example.org",
      "kind": "domain"
    }
  ]
}
`
	if out.String() != want {
		t.Errorf("output = %s, want %s", out.String(), want)
	}
}

func TestHandlerError(t *testing.T) {
	_, err := Handler(context.Background(), Config{Hosts: []string{"ok.com", "[::1"}}, &cli.BasicDeps{})
	if err == nil {
		t.Error("Handler() succeeded with an invalid host")
	}
}
