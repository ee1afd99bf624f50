// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package querycmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uricomponents/internal/cli"
)

func TestValidation(t *testing.T) {
	valid := Config{Encoding: "rfc3986", OutputEncoding: "rfc1738", Format: "yaml"}
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"bad encoding", func(c *Config) { c.Encoding = "utf-7" }, true},
		{"bad output encoding", func(c *Config) { c.OutputEncoding = "base64" }, true},
		{"collation without sort", func(c *Config) { c.Collation = "fr" }, true},
		{"bad collation", func(c *Config) { c.Sort, c.Collation = true, "not a tag!" }, true},
		{"collation", func(c *Config) { c.Sort, c.Collation = true, "fr-CA" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func value(s string) *string { return &s }

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		query  string
		pairs  []Pair
		params string
	}{
		{
			name:   "sorted",
			cfg:    Config{Query: "b=2&a[]=1&a[]=3&c", Sort: true},
			query:  "a%5B%5D=1&a%5B%5D=3&b=2&c",
			pairs:  []Pair{{"a[]", value("1")}, {"a[]", value("3")}, {"b", value("2")}, {"c", nil}},
			params: `{"a":{"0":"1","1":"3"},"b":"2","c":""}`,
		},
		{
			name:   "cleaned",
			cfg:    Config{Query: "a[0]=x&a[1]=y&&z=1&z=1&drop[k]=v", Without: "drop", WithoutEmpty: true, WithoutDuplicates: true, WithoutNumericIndices: true},
			query:  "a%5B%5D=x&a%5B%5D=y&z=1",
			pairs:  []Pair{{"a[]", value("x")}, {"a[]", value("y")}, {"z", value("1")}},
			params: `{"a":{"0":"x","1":"y"},"z":"1"}`,
		},
		{
			name:   "form encoding and separator",
			cfg:    Config{Query: "q=a+b;lang=fr", Separator: ";", Encoding: "rfc1738", OutputEncoding: "rfc3986"},
			query:  "q=a%20b;lang=fr",
			pairs:  []Pair{{"q", value("a b")}, {"lang", value("fr")}},
			params: `{"q":"a b","lang":"fr"}`,
		},
		{
			name:   "collated",
			cfg:    Config{Query: "f=1&%C3%A9=2&e=3", Sort: true, Collation: "fr"},
			query:  "e=3&%C3%A9=2&f=1",
			pairs:  []Pair{{"e", value("3")}, {"é", value("2")}, {"f", value("1")}},
			params: `{"e":"3","é":"2","f":"1"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			if cfg.Separator == "" {
				cfg.Separator = "&"
			}
			got, err := Handler(context.Background(), cfg, &cli.BasicDeps{})
			if err != nil {
				t.Fatalf("Handler() failed: %v", err)
			}
			if got.Query != tc.query {
				t.Errorf("Query = %q, want %q", got.Query, tc.query)
			}
			if diff := cmp.Diff(tc.pairs, got.Pairs, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Pairs mismatch (-want +got):\n%s", diff)
			}
			params, err := json.Marshal(got.Params)
			if err != nil {
				t.Fatalf("json.Marshal() failed: %v", err)
			}
			if string(params) != tc.params {
				t.Errorf("Params = %s, want %s", params, tc.params)
			}
		})
	}
}

func TestCommand(t *testing.T) {
	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "yaml", "?a=1&b"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	want := `query: a=1&b
pairs:
  - key: a
    value: "1"
  - key: b
    value: null
params:
  a: "1"
  b: ""
`
	if out.String() != want {
		t.Errorf("output = %s, want %s", out.String(), want)
	}
}
