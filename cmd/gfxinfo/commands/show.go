// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gfxinfo/cmd/gfxinfo/cli"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/report"
)

// exitNoGPU is the exit status when no adapter resolves a device.
const exitNoGPU = 2

func showCommand(env Environment) *cli.Command {
	var (
		globals globalFlags
		format  string
		trace   bool
		noColor bool
	)

	return &cli.Command{
		Name:    "show",
		Summary: "Print the active GPU's identity and telemetry",
		Description: `Resolve the active GPU and print one reading of its identity and
telemetry. Exits 2 when no adapter finds a GPU.

Text output is colored when stdout is a terminal; JSON and YAML are
syntax-highlighted in the same case. CBOR is written as-is.`,
		Usage: "gfxinfo show [--format text|json|yaml|cbor] [--trace] [--no-color]",
		Examples: []cli.Example{
			{Description: "Human-readable summary", Command: "gfxinfo"},
			{Description: "Show which adapters were tried", Command: "gfxinfo show --trace"},
			{Description: "Machine-readable report", Command: "gfxinfo show --format json | jq .gpu"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			globals.register(flagSet)
			flagSet.StringVarP(&format, "format", "f", "text", "output format: text, json, yaml, or cbor")
			flagSet.BoolVar(&trace, "trace", false, "include the resolver attempts")
			flagSet.BoolVar(&noColor, "no-color", false, "disable colors even on a terminal")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			outputFormat, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, logger, err := globals.setup(env.Stderr)
			if err != nil {
				return err
			}

			style := report.Style{
				Color: !noColor && cli.IsTerminal(env.Stdout),
				Trace: trace,
			}

			gpu, attempts, err := env.resolve(cfg, logger)
			if errors.Is(err, hwinfo.ErrNoGPUFound) {
				fmt.Fprintln(env.Stderr, "gfxinfo: no GPU found")
				fmt.Fprint(env.Stderr, report.RenderAttempts(attempts, report.Style{Color: !noColor && cli.IsTerminal(env.Stderr)}))
				return &cli.ExitError{Code: exitNoGPU}
			}
			if err != nil {
				return err
			}
			defer gpu.Close()

			var reported []hwinfo.Attempt
			if trace {
				reported = attempts
			}
			built, err := report.Build(gpu, reported)
			if err != nil {
				return err
			}
			return report.Encode(env.Stdout, built, outputFormat, style)
		},
	}
}
