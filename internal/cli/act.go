// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package cli wires transport-agnostic actions into cobra commands and
// renders their results.
package cli

import "context"

// Input is a validated input type, usually a command Config.
type Input interface {
	Validate() error
}

// Deps is a dependency container receiving the command IO streams.
type Deps interface {
	SetIO(IO)
}

// InitDeps initializes dependencies from context.
type InitDeps[D Deps] func(context.Context) (D, error)

// Action is a transport-agnostic operation.
type Action[I Input, O any, D Deps] func(context.Context, I, D) (*O, error)

// NoOutput is a zero-value output for actions that only produce side effects.
type NoOutput struct{}
