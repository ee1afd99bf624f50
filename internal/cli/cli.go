// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ParseArgs populates an Input from positional arguments.
type ParseArgs[I Input] func(in *I, args []string) error

// SkipArgs is a ParseArgs that sets no arguments.
func SkipArgs[I Input](cfg *I, args []string) error {
	return nil
}

// Formatter is an Input selecting the rendering of the action output.
type Formatter interface {
	OutputFormat() Format
}

// RunE constructs a cobra.Command.RunE from act components.
// This function wires together:
//  1. Parsing positional arguments into the Input
//  2. Validating the Input
//  3. Initializing dependencies
//  4. Attaching IO streams to dependencies
//  5. Executing the action
//  6. Rendering its output, in the Input's Format when it is a Formatter
func RunE[I Input, O any, D Deps](
	cfg *I,
	parseArgs ParseArgs[I],
	initDeps InitDeps[D],
	action Action[I, O, D],
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := parseArgs(cfg, args); err != nil {
			return err
		}
		if err := (*cfg).Validate(); err != nil {
			return err
		}
		deps, err := initDeps(cmd.Context())
		if err != nil {
			return errors.Wrap(err, "initializing dependencies")
		}
		deps.SetIO(IO{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		})
		out, err := action(cmd.Context(), *cfg, deps)
		if err != nil {
			return err
		}
		if out == nil {
			return nil
		}
		if _, ok := any(out).(*NoOutput); ok {
			return nil
		}
		format := FormatYAML
		if f, ok := any(*cfg).(Formatter); ok {
			format = f.OutputFormat()
		}
		return Render(cmd.OutOrStdout(), format, out)
	}
}
