// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package domaincmd

import (
	"context"
	"flag"
	"strconv"
	"strings"

	"github.com/google/uricomponents/internal/cli"
	"github.com/google/uricomponents/pkg/uri/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the domain command.
type Config struct {
	Domain        string
	WithoutLabels string
	Prepend       string
	Append        string
	SubDomain     string
	Suffix        bool
	Format        string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Domain == "" {
		return errors.New("domain is required")
	}
	if _, err := c.indexes(); err != nil {
		return err
	}
	_, err := cli.ParseFormat(c.Format)
	return err
}

// OutputFormat returns the requested rendering.
func (c Config) OutputFormat() cli.Format {
	f, _ := cli.ParseFormat(c.Format)
	return f
}

func (c Config) indexes() ([]int, error) {
	if c.WithoutLabels == "" {
		return nil, nil
	}
	var idx []int
	for _, s := range strings.Split(c.WithoutLabels, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, errors.Errorf("invalid label index %q", s)
		}
		idx = append(idx, i)
	}
	return idx, nil
}

// Output describes a domain name.
type Output struct {
	Domain   string       `json:"domain" yaml:"domain"`
	Unicode  string       `json:"unicode,omitempty" yaml:"unicode,omitempty"`
	Absolute bool         `json:"absolute" yaml:"absolute"`
	Labels   []string     `json:"labels" yaml:"labels"`
	Suffix   *domain.Info `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Deps holds dependencies for the command.
type Deps struct {
	IO       cli.IO
	Resolver domain.Resolver
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{Resolver: domain.PublicSuffixList}, nil
}

// Handler applies the requested edits, in flag order, and describes the
// resulting domain.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*Output, error) {
	d, err := domain.New(cfg.Domain)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing domain %q", cfg.Domain)
	}
	idx, _ := cfg.indexes()
	if len(idx) > 0 {
		if d, err = d.WithoutLabel(idx...); err != nil {
			return nil, errors.Wrap(err, "removing labels")
		}
	}
	if cfg.Prepend != "" {
		if d, err = d.Prepend(cfg.Prepend); err != nil {
			return nil, errors.Wrap(err, "prepending label")
		}
	}
	if cfg.Append != "" {
		if d, err = d.Append(cfg.Append); err != nil {
			return nil, errors.Wrap(err, "appending label")
		}
	}
	if cfg.SubDomain != "" {
		if d, err = d.WithSubDomain(deps.Resolver, cfg.SubDomain); err != nil {
			return nil, errors.Wrap(err, "replacing sub-domain")
		}
	}
	out := &Output{
		Domain:   d.String(),
		Absolute: d.IsAbsolute(),
		Labels:   d.Labels(),
	}
	if u := d.Host().ToUnicode(); u != out.Domain {
		out.Unicode = u
	}
	if cfg.Suffix {
		info, err := d.Resolve(deps.Resolver)
		if err != nil {
			return nil, errors.Wrap(err, "resolving public suffix")
		}
		out.Suffix = &info
	}
	return out, nil
}

func parseArgs(cfg *Config, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one domain")
	}
	cfg.Domain = args[0]
	return nil
}

// Command creates a new domain command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "domain [--suffix] [--without-labels <i,j>] [--prepend <label>] [--append <label>] [--sub-domain <name>] <domain>",
		Short: "Inspect and edit the labels of a domain name",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			parseArgs,
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.WithoutLabels, "without-labels", "", "comma-separated label indexes to remove, negative from the end")
	set.StringVar(&cfg.Prepend, "prepend", "", "label to add before the domain")
	set.StringVar(&cfg.Append, "append", "", "label to add after the domain")
	set.StringVar(&cfg.SubDomain, "sub-domain", "", "replace the labels preceding the registrable domain")
	set.BoolVar(&cfg.Suffix, "suffix", false, "resolve the public suffix")
	set.StringVar(&cfg.Format, "format", "yaml", "output format [yaml, json, toml, text]")
	return set
}
