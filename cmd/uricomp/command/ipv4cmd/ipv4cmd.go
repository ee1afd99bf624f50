// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package ipv4cmd

import (
	"context"
	"flag"
	"math/big"
	"slices"

	"github.com/google/uricomponents/internal/cli"
	"github.com/google/uricomponents/pkg/uri/ipv4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var backends = []string{"auto", "native", "big"}

// Config holds all configuration for the ipv4 command.
type Config struct {
	Hosts   []string
	Backend string
	Format  string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if len(c.Hosts) == 0 {
		return errors.New("at least one host is required")
	}
	if !slices.Contains(backends, c.Backend) {
		return errors.Errorf("unknown backend %q, want one of %v", c.Backend, backends)
	}
	_, err := cli.ParseFormat(c.Format)
	return err
}

// OutputFormat returns the requested rendering.
func (c Config) OutputFormat() cli.Format {
	f, _ := cli.ParseFormat(c.Format)
	return f
}

// Result is the IPv4 reading of a host.
type Result struct {
	Input string `json:"input" yaml:"input"`
	IPv4  string `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
	Valid bool   `json:"valid" yaml:"valid"`
}

// Output is the result of the ipv4 command.
type Output struct {
	Results []Result `json:"results" yaml:"results"`
}

func normalizer(backend string) ipv4.Normalizer {
	switch backend {
	case "native":
		return ipv4.NewParser[uint64](ipv4.Native{})
	case "big":
		return ipv4.NewParser[*big.Int](ipv4.Big{})
	default:
		return ipv4.NewNormalizer()
	}
}

// Handler reads every host as an IPv4 address in any of the dotted
// decimal, octal or hexadecimal notations.
func Handler(ctx context.Context, cfg Config, deps *cli.BasicDeps) (*Output, error) {
	n := normalizer(cfg.Backend)
	out := &Output{}
	for _, h := range cfg.Hosts {
		r := Result{Input: h}
		if addr, ok := n.Parse(h); ok {
			r.IPv4 = addr.String()
			r.Valid = true
		}
		out.Results = append(out.Results, r)
	}
	return out, nil
}

func parseArgs(cfg *Config, args []string) error {
	cfg.Hosts = args
	return nil
}

// Command creates a new ipv4 command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "ipv4 [--backend auto|native|big] [--format <format>] <host>...",
		Short: "Convert hosts written with IPv4 numbers to dotted decimal",
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
	set.StringVar(&cfg.Backend, "backend", "auto", "integer arithmetic backend [auto, native, big]")
	set.StringVar(&cfg.Format, "format", "yaml", "output format [yaml, json, toml, text]")
	return set
}
