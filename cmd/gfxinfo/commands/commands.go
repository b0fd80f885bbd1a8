// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the gfxinfo command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gfxinfo/cmd/gfxinfo/cli"
	"github.com/bureau-foundation/gfxinfo/lib/config"
	"github.com/bureau-foundation/gfxinfo/lib/gfxinfo"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/version"
)

// Environment is the process context commands run in.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Resolve opens the active GPU. Tests substitute a scripted chain.
	Resolve func(options ...gfxinfo.Option) (*gfxinfo.GPU, error)
}

// DefaultEnvironment uses the process streams and the platform chain.
func DefaultEnvironment() Environment {
	return Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Resolve: gfxinfo.ActiveGPU,
	}
}

// Root builds the gfxinfo command tree. "show" runs when no command
// is named.
func Root(env Environment) *cli.Command {
	return &cli.Command{
		Name: "gfxinfo",
		Description: `gfxinfo: identity and live telemetry of the active GPU.

Resolves the machine's GPU through the platform's native sources
(amdgpu DRM and NVML on Linux, NVML and WMI on Windows, the I/O
Registry on macOS) and reports vendor, model, family, device id, VRAM
usage, load, and temperature.`,
		Default: "show",
		Output:  env.Stderr,
		Subcommands: []*cli.Command{
			showCommand(env),
			watchCommand(env),
			serveCommand(env),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string) error {
					version.Print(env.Stdout, "gfxinfo")
					return nil
				},
			},
		},
	}
}

// globalFlags are accepted by every command that touches a GPU.
type globalFlags struct {
	configPath string
	logLevel   string
}

func (g *globalFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.configPath, "config", "", "config file (default $"+config.EnvVar+")")
	flagSet.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, or error (overrides config)")
}

// setup loads configuration and builds the command logger. The
// --log-level flag wins over the config file.
func (g *globalFlags) setup(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Discover(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	return cfg, cli.NewCommandLogger(stderr, level), nil
}

// resolve opens the active GPU with cfg and logger, collecting the
// resolver trace.
func (env Environment) resolve(cfg *config.Config, logger *slog.Logger) (*gfxinfo.GPU, []hwinfo.Attempt, error) {
	var trace []hwinfo.Attempt
	gpu, err := env.Resolve(
		gfxinfo.WithConfig(cfg),
		gfxinfo.WithLogger(logger),
		gfxinfo.WithTrace(func(attempt hwinfo.Attempt) { trace = append(trace, attempt) }),
	)
	return gpu, trace, err
}
