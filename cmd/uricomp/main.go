// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// uricomp inspects, validates and normalizes URI components.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/google/uricomponents/cmd/uricomp/command/componentcmd"
	"github.com/google/uricomponents/cmd/uricomp/command/domaincmd"
	"github.com/google/uricomponents/cmd/uricomp/command/hostcmd"
	"github.com/google/uricomponents/cmd/uricomp/command/hostscmd"
	"github.com/google/uricomponents/cmd/uricomp/command/ipv4cmd"
	"github.com/google/uricomponents/cmd/uricomp/command/querycmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "uricomp [subcommand]",
	Short:         "A CLI tool for inspecting URI components",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.AddCommand(hostcmd.Command())
	rootCmd.AddCommand(hostscmd.Command())
	rootCmd.AddCommand(domaincmd.Command())
	rootCmd.AddCommand(ipv4cmd.Command())
	rootCmd.AddCommand(querycmd.Command())
	rootCmd.AddCommand(componentcmd.Command())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
