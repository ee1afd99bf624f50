// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"io"
)

// IO provides input/output streams for CLI commands.
type IO struct {
	In  io.Reader // stdin
	Out io.Writer // stdout
	Err io.Writer // stderr
}

// BasicDeps holds nothing but the IO streams.
type BasicDeps struct {
	IO IO
}

func (d *BasicDeps) SetIO(cio IO) { d.IO = cio }

// InitBasicDeps is an InitDeps returning empty BasicDeps.
func InitBasicDeps(context.Context) (*BasicDeps, error) { return &BasicDeps{}, nil }
