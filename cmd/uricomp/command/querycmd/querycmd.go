// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package querycmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/uricomponents/internal/cli"
	"github.com/google/uricomponents/pkg/uri/query"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// Config holds all configuration for the query command.
type Config struct {
	Query                 string
	Separator             string
	Encoding              string
	OutputEncoding        string
	Without               string
	WithoutEmpty          bool
	WithoutDuplicates     bool
	WithoutNumericIndices bool
	Sort                  bool
	Collation             string
	Format                string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if _, err := query.ParseEncoding(c.Encoding); err != nil {
		return errors.Wrap(err, "parsing --encoding")
	}
	if _, err := query.ParseEncoding(c.OutputEncoding); err != nil {
		return errors.Wrap(err, "parsing --output-encoding")
	}
	if c.Collation != "" {
		if !c.Sort {
			return errors.New("--collation requires --sort")
		}
		if _, err := language.Parse(c.Collation); err != nil {
			return errors.Wrap(err, "parsing --collation")
		}
	}
	_, err := cli.ParseFormat(c.Format)
	return err
}

// OutputFormat returns the requested rendering.
func (c Config) OutputFormat() cli.Format {
	f, _ := cli.ParseFormat(c.Format)
	return f
}

// Pair is a decoded query pair. Value is nil for a key without "=".
type Pair struct {
	Key   string  `json:"key" yaml:"key"`
	Value *string `json:"value" yaml:"value"`
}

// Output describes a query string.
type Output struct {
	Query  string         `json:"query" yaml:"query"`
	Pairs  []Pair         `json:"pairs" yaml:"pairs"`
	Params cli.OrderedMap `json:"params" yaml:"params"`
}

// Handler parses the query, applies the requested edits and describes the
// result.
func Handler(ctx context.Context, cfg Config, deps *cli.BasicDeps) (*Output, error) {
	enc, _ := query.ParseEncoding(cfg.Encoding)
	q, err := query.ParseWith(cfg.Query, cfg.Separator, enc)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing query %q", cfg.Query)
	}
	if cfg.Without != "" {
		for _, name := range strings.Split(cfg.Without, ",") {
			q = q.WithoutParam(name)
		}
	}
	if cfg.WithoutEmpty {
		q = q.WithoutEmptyPairs()
	}
	if cfg.WithoutDuplicates {
		q = q.WithoutDuplicates()
	}
	if cfg.WithoutNumericIndices {
		q = q.WithoutNumericIndices()
	}
	if cfg.Sort {
		if cfg.Collation == "" {
			q = q.Sort()
		} else {
			q = q.SortFunc(query.Collated(language.Make(cfg.Collation)))
		}
	}
	outEnc, _ := query.ParseEncoding(cfg.OutputEncoding)
	s, _ := q.Encode(outEnc)
	out := &Output{Query: s, Pairs: []Pair{}, Params: cli.OrderedMap{Ordered: q.Params()}}
	for p := range q.All() {
		pair := Pair{Key: p.Key}
		if !p.NoValue {
			pair.Value = &p.Value
		}
		out.Pairs = append(out.Pairs, pair)
	}
	return out, nil
}

func parseArgs(cfg *Config, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one query")
	}
	cfg.Query = strings.TrimPrefix(args[0], "?")
	return nil
}

// Command creates a new query command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "query [--separator <sep>] [--encoding <enc>] [--sort [--collation <lang>]] [--without <names>] <query>",
		Short: "Parse, edit and re-encode a query string",
		Args:  cobra.ExactArgs(1),
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
	set.StringVar(&cfg.Separator, "separator", query.DefaultSeparator, "pair separator")
	set.StringVar(&cfg.Encoding, "encoding", "rfc3986", "input encoding [rfc3986, rfc1738, none]")
	set.StringVar(&cfg.OutputEncoding, "output-encoding", "rfc3986", "output encoding [rfc3986, rfc1738, none]")
	set.StringVar(&cfg.Without, "without", "", "comma-separated parameter names to remove")
	set.BoolVar(&cfg.WithoutEmpty, "without-empty", false, "remove pairs with an empty key and value")
	set.BoolVar(&cfg.WithoutDuplicates, "without-duplicates", false, "remove repeated pairs")
	set.BoolVar(&cfg.WithoutNumericIndices, "without-numeric-indices", false, "rewrite a[0] keys as a[]")
	set.BoolVar(&cfg.Sort, "sort", false, "sort the pairs by key")
	set.StringVar(&cfg.Collation, "collation", "", "sort with the collation of this language tag")
	set.StringVar(&cfg.Format, "format", "yaml", "output format [yaml, json, toml, text]")
	return set
}
