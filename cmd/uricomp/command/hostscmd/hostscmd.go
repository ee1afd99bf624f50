// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package hostscmd

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/google/uricomponents/cmd/uricomp/command/hostcmd"
	"github.com/google/uricomponents/internal/cache"
	"github.com/google/uricomponents/internal/cli"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Config holds all configuration for the hosts command.
type Config struct {
	MaxConcurrency int
	CacheSize      int
	Progress       bool
	NormalizeIPv4  bool
	Format         string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.MaxConcurrency < 1 {
		return errors.New("max-concurrency must be positive")
	}
	if c.CacheSize < 1 {
		return errors.New("cache-size must be positive")
	}
	_, err := cli.ParseFormat(c.Format)
	return err
}

// OutputFormat returns the requested rendering.
func (c Config) OutputFormat() cli.Format {
	f, _ := cli.ParseFormat(c.Format)
	return f
}

// Deps holds dependencies for the command.
type Deps struct {
	IO cli.IO
	// Cache coalesces repeated hosts. A nil Cache is replaced by an LRU of
	// Config.CacheSize entries.
	Cache cache.Cache
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// cacheKey identifies a report by its input and the options it depends on.
type cacheKey struct {
	host          string
	normalizeIPv4 bool
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, errors.Wrap(s.Err(), "reading hosts")
}

// Handler inspects every host read from the input, one per line. Invalid
// hosts are reported rather than failing the command. The output keeps the
// input order.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*hostcmd.Output, error) {
	lines, err := readLines(deps.IO.In)
	if err != nil {
		return nil, err
	}
	c := deps.Cache
	if c == nil {
		c = cache.NewLRU(cfg.CacheSize)
	}
	log.Printf("Inspecting %d hosts...\n", len(lines))
	var bar *pb.ProgressBar
	if cfg.Progress {
		bar = pb.New(len(lines))
		bar.Output = deps.IO.Err
		bar.ShowTimeLeft = true
		bar.Start()
		defer bar.Finish()
	}
	reports := make([]hostcmd.Report, len(lines))
	eg, eCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.MaxConcurrency)
	for i, line := range lines {
		eg.Go(func() error {
			if err := eCtx.Err(); err != nil {
				return err
			}
			v, err := c.GetOrSet(cacheKey{line, cfg.NormalizeIPv4}, func() (any, error) {
				r, err := hostcmd.Inspect(line, cfg.NormalizeIPv4)
				if err != nil {
					r = hostcmd.Report{Input: line, Error: err.Error()}
				}
				return r, nil
			})
			if err != nil {
				return err
			}
			reports[i] = v.(hostcmd.Report)
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "inspecting hosts")
	}
	var invalid int
	for _, r := range reports {
		if r.Error != "" {
			invalid++
		}
	}
	if invalid > 0 {
		log.Printf("%d of %d hosts are invalid\n", invalid, len(reports))
	}
	return &hostcmd.Output{Hosts: reports}, nil
}

// Command creates a new hosts command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "hosts [--max-concurrency N] [--progress] [--format <format>] < hosts.txt",
		Short: "Classify newline-delimited hosts read from stdin",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[Config],
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
	set.IntVar(&cfg.MaxConcurrency, "max-concurrency", 10, "maximum number of hosts parsed concurrently")
	set.IntVar(&cfg.CacheSize, "cache-size", 1000, "number of distinct hosts whose result is kept")
	set.BoolVar(&cfg.Progress, "progress", false, "display a progress bar on stderr")
	set.BoolVar(&cfg.NormalizeIPv4, "ipv4", false, "report domains made of IPv4 numbers as IPv4 hosts")
	set.StringVar(&cfg.Format, "format", "yaml", "output format [yaml, json, toml, text]")
	return set
}
