// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package ipv4cmd

import (
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
		{"missing hosts", Config{Backend: "auto", Format: "yaml"}, true},
		{"bad backend", Config{Hosts: []string{"1"}, Backend: "gmp", Format: "yaml"}, true},
		{"valid config", Config{Hosts: []string{"1"}, Backend: "big", Format: "yaml"}, false},
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
	hosts := []string{"0x7f.1", "192.168.0.257", "4294967295", "0300.0250.0.1.", "toto"}
	want := &Output{Results: []Result{
		{Input: "0x7f.1", IPv4: "127.0.0.1", Valid: true},
		{Input: "192.168.0.257"},
		{Input: "4294967295", IPv4: "255.255.255.255", Valid: true},
		{Input: "0300.0250.0.1.", IPv4: "192.168.0.1", Valid: true},
		{Input: "toto"},
	}}
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			got, err := Handler(context.Background(), Config{Hosts: hosts, Backend: backend}, &cli.BasicDeps{})
			if err != nil {
				t.Fatalf("Handler() failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Handler() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
