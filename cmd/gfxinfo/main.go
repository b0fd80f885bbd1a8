// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/gfxinfo/cmd/gfxinfo/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired exit code. Don't print a redundant "error:"
		// line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(commands.DefaultEnvironment()).Execute(ctx, os.Args[1:])
}
