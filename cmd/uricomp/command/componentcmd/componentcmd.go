// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package componentcmd

import (
	"context"
	"flag"
	"maps"
	"slices"
	"strconv"

	"github.com/google/uricomponents/internal/cli"
	"github.com/google/uricomponents/pkg/uri"
	"github.com/google/uricomponents/pkg/uri/component"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type parser func(string) (uri.Component, map[string]string, error)

var parsers = map[string]parser{
	"scheme": func(s string) (uri.Component, map[string]string, error) {
		c, err := component.NewScheme(s)
		return c, nil, err
	},
	"port": func(s string) (uri.Component, map[string]string, error) {
		c, err := component.ParsePort(s)
		return c, nil, err
	},
	"fragment": func(s string) (uri.Component, map[string]string, error) {
		c, err := component.NewFragment(s)
		return c, nil, err
	},
	"path": func(s string) (uri.Component, map[string]string, error) {
		c, err := component.NewPath(s)
		if err != nil {
			return nil, nil, err
		}
		return c, map[string]string{
			"absolute":       strconv.FormatBool(c.IsAbsolute()),
			"trailing_slash": strconv.FormatBool(c.HasTrailingSlash()),
			"normalized":     c.WithoutDotSegments().String(),
		}, nil
	},
	"userinfo": func(s string) (uri.Component, map[string]string, error) {
		c, err := component.ParseUserInfo(s)
		if err != nil {
			return nil, nil, err
		}
		d := map[string]string{}
		d["user"], _ = c.User()
		if p, ok := c.Pass(); ok {
			d["pass"] = p
		}
		return c, d, nil
	},
	"authority": func(s string) (uri.Component, map[string]string, error) {
		c, err := component.ParseAuthority(s)
		if err != nil {
			return nil, nil, err
		}
		return c, map[string]string{
			"host":      c.Host().String(),
			"host_kind": c.Host().Kind().String(),
			"port":      c.Port().String(),
			"userinfo":  c.UserInfo().String(),
		}, nil
	},
	"datapath": func(s string) (uri.Component, map[string]string, error) {
		c, err := component.ParseDataPath(s)
		if err != nil {
			return nil, nil, err
		}
		return c, map[string]string{
			"mimetype":   c.MimeType(),
			"parameters": c.Parameters(),
			"binary":     strconv.FormatBool(c.IsBinaryData()),
		}, nil
	},
}

// Types lists the component types the command understands.
var Types = slices.Sorted(maps.Keys(parsers))

// Config holds all configuration for the component command.
type Config struct {
	Type   string
	Value  string
	Format string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if _, ok := parsers[c.Type]; !ok {
		return errors.Errorf("unknown component type %q, want one of %v", c.Type, Types)
	}
	_, err := cli.ParseFormat(c.Format)
	return err
}

// OutputFormat returns the requested rendering.
func (c Config) OutputFormat() cli.Format {
	f, _ := cli.ParseFormat(c.Format)
	return f
}

// Output describes a URI component.
type Output struct {
	Type         string            `json:"type" yaml:"type"`
	Value        string            `json:"value" yaml:"value"`
	Present      bool              `json:"present" yaml:"present"`
	Decoded      string            `json:"decoded,omitempty" yaml:"decoded,omitempty"`
	URIComponent string            `json:"uri_component" yaml:"uri_component"`
	Details      map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Handler parses the value as a component of the configured type.
func Handler(ctx context.Context, cfg Config, deps *cli.BasicDeps) (*Output, error) {
	c, details, err := parsers[cfg.Type](cfg.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s %q", cfg.Type, cfg.Value)
	}
	v, ok := c.Value()
	out := &Output{
		Type:         cfg.Type,
		Value:        v,
		Present:      ok,
		URIComponent: c.URIComponent(),
		Details:      details,
	}
	if d, isDecodable := c.(uri.Decodable); isDecodable {
		if dv, _ := d.Decoded(); dv != v {
			out.Decoded = dv
		}
	}
	return out, nil
}

func parseArgs(cfg *Config, args []string) error {
	if len(args) != 2 {
		return errors.New("expected a component type and a value")
	}
	cfg.Type, cfg.Value = args[0], args[1]
	return nil
}

// Command creates a new component command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "component [--format <format>] <type> <value>",
		Short: "Validate and encode a single URI component",
		Long:  "Validate and encode a single URI component. Types: scheme, port, fragment, path, userinfo, authority, datapath.",
		Args:  cobra.ExactArgs(2),
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
	set.StringVar(&cfg.Format, "format", "yaml", "output format [yaml, json, toml, text]")
	return set
}
