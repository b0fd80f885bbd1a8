// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gfxinfo/cmd/gfxinfo/cli"
	"github.com/bureau-foundation/gfxinfo/lib/gpuui"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

func watchCommand(env Environment) *cli.Command {
	var (
		globals  globalFlags
		interval time.Duration
	)

	return &cli.Command{
		Name:    "watch",
		Summary: "Show live GPU telemetry in the terminal",
		Description: `Resolve the active GPU once, then redraw VRAM usage, load, and
temperature every interval until q is pressed. The interval defaults
to watch.interval from the config file.`,
		Usage: "gfxinfo watch [--interval 1s]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("watch", pflag.ContinueOnError)
			globals.register(flagSet)
			flagSet.DurationVarP(&interval, "interval", "i", 0, "refresh interval (default from config, 1s)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			cfg, logger, err := globals.setup(env.Stderr)
			if err != nil {
				return err
			}
			if interval == 0 {
				interval = cfg.WatchInterval()
			}
			if interval < 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			gpu, _, err := env.resolve(cfg, logger)
			if errors.Is(err, hwinfo.ErrNoGPUFound) {
				fmt.Fprintln(env.Stderr, "gfxinfo: no GPU found")
				return &cli.ExitError{Code: exitNoGPU}
			}
			if err != nil {
				return err
			}
			defer gpu.Close()

			options := []tea.ProgramOption{
				tea.WithContext(ctx),
				tea.WithInput(env.Stdin),
				tea.WithOutput(env.Stdout),
			}
			if cli.IsTerminal(env.Stdout) {
				options = append(options, tea.WithAltScreen())
			}
			err = gpuui.Run(gpu, interval, options...)
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}
