// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package hostcmd

import (
	"context"
	"flag"

	"github.com/google/uricomponents/internal/cli"
	"github.com/google/uricomponents/pkg/uri/host"
	"github.com/google/uricomponents/pkg/uri/ipv4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the host command.
type Config struct {
	Hosts         []string
	NormalizeIPv4 bool
	Format        string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if len(c.Hosts) == 0 {
		return errors.New("at least one host is required")
	}
	_, err := cli.ParseFormat(c.Format)
	return err
}

// OutputFormat returns the requested rendering.
func (c Config) OutputFormat() cli.Format {
	f, _ := cli.ParseFormat(c.Format)
	return f
}

// Report describes a single host.
type Report struct {
	Input     string `json:"input" yaml:"input"`
	Host      string `json:"host" yaml:"host"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	IPVersion string `json:"ip_version,omitempty" yaml:"ip_version,omitempty"`
	IP        string `json:"ip,omitempty" yaml:"ip,omitempty"`
	Zone      bool   `json:"zone,omitempty" yaml:"zone,omitempty"`
	Unicode   string `json:"unicode,omitempty" yaml:"unicode,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Output is the result of the host command.
type Output struct {
	Hosts []Report `json:"hosts" yaml:"hosts"`
}

// Inspect parses raw and describes it. When normalizeIPv4 is set, domains
// made of IPv4 numbers are reported as the IPv4 host they denote.
func Inspect(raw string, normalizeIPv4 bool) (Report, error) {
	h, err := host.New(raw)
	if err != nil {
		return Report{}, err
	}
	if normalizeIPv4 {
		h = ipv4.NormalizeHost(h)
	}
	r := Report{
		Input:     raw,
		Host:      h.String(),
		Kind:      h.Kind().String(),
		IPVersion: h.IPVersion(),
		IP:        h.IP(),
		Zone:      h.HasZoneIdentifier(),
	}
	if h.IsDomain() {
		if u := h.ToUnicode(); u != r.Host {
			r.Unicode = u
		}
	}
	return r, nil
}

// Deps holds dependencies for the command.
type Deps = cli.BasicDeps

// Handler contains the business logic for the host command.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*Output, error) {
	out := &Output{}
	for _, raw := range cfg.Hosts {
		r, err := Inspect(raw, cfg.NormalizeIPv4)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing host %q", raw)
		}
		out.Hosts = append(out.Hosts, r)
	}
	return out, nil
}

func parseArgs(cfg *Config, args []string) error {
	cfg.Hosts = args
	return nil
}

// Command creates a new host command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "host [--ipv4] [--format <format>] <host>...",
		Short: "Classify and normalize hosts",
		Args:  cobra.MinimumNArgs(1),
		RunE: cli.RunE(
			&cfg,
			parseArgs,
			cli.InitBasicDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.BoolVar(&cfg.NormalizeIPv4, "ipv4", false, "report domains made of IPv4 numbers as IPv4 hosts")
	set.StringVar(&cfg.Format, "format", "yaml", "output format [yaml, json, toml, text]")
	return set
}
