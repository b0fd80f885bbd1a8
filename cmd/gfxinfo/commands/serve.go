// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gfxinfo/cmd/gfxinfo/cli"
	"github.com/bureau-foundation/gfxinfo/lib/exporter"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(env Environment) *cli.Command {
	var (
		globals globalFlags
		listen  string
	)

	return &cli.Command{
		Name:    "serve",
		Summary: "Export GPU telemetry as Prometheus metrics",
		Description: `Resolve the active GPU once and serve its telemetry on /metrics.
Every scrape reads the GPU again; nothing is cached between scrapes.
Runs until interrupted.`,
		Usage: "gfxinfo serve [--listen :9835]",
		Examples: []cli.Example{
			{Description: "Serve on localhost only", Command: "gfxinfo serve --listen 127.0.0.1:9835"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("serve", pflag.ContinueOnError)
			globals.register(flagSet)
			flagSet.StringVarP(&listen, "listen", "l", "", "listen address (default from config, :9835)")
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
			if listen == "" {
				listen = cfg.Serve.Listen
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

			server := exporter.NewServer(listen, exporter.NewRegistry(gpu), logger)
			if err := server.Start(); err != nil {
				return err
			}
			fmt.Fprintf(env.Stderr, "serving %s %s metrics on http://%s/metrics\n",
				gpu.Vendor(), gpu.Model(), server.Addr())

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Stop(shutdownCtx)
		},
	}
}
