// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	root := &Command{
		Name: "gfxinfo",
		Subcommands: []*Command{
			{Name: "show", Run: func(context.Context, []string) error { called = "show"; return nil }},
			{Name: "watch", Run: func(context.Context, []string) error { called = "watch"; return nil }},
		},
	}

	if err := root.Execute(context.Background(), []string{"watch"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "watch" {
		t.Errorf("dispatched to %q, want %q", called, "watch")
	}
}

func TestCommand_Execute_DefaultSubcommand(t *testing.T) {
	var format string
	var called bool
	root := &Command{
		Name:    "gfxinfo",
		Default: "show",
		Subcommands: []*Command{
			{
				Name: "show",
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
					flagSet.StringVar(&format, "format", "text", "output format")
					return flagSet
				},
				Run: func(context.Context, []string) error { called = true; return nil },
			},
			{Name: "version", Run: func(context.Context, []string) error { return nil }},
		},
	}

	if err := root.Execute(context.Background(), nil); err != nil {
		t.Fatalf("Execute(nil) error: %v", err)
	}
	if !called {
		t.Fatal("default subcommand did not run")
	}

	if err := root.Execute(context.Background(), []string{"--format", "json"}); err != nil {
		t.Fatalf("Execute(--format json) error: %v", err)
	}
	if format != "json" {
		t.Errorf("format = %q, want json", format)
	}
}

func TestCommand_Execute_MissingDefault(t *testing.T) {
	root := &Command{Name: "gfxinfo", Default: "show", Subcommands: []*Command{{Name: "version"}}}
	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), `"show"`) {
		t.Errorf("Execute() = %v, want undefined default error", err)
	}
}

func TestCommand_Execute_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")
	var got any
	command := &Command{
		Name: "show",
		Run: func(ctx context.Context, _ []string) error {
			got = ctx.Value(key{})
			return nil
		},
	}
	if err := command.Execute(ctx, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got != "value" {
		t.Errorf("context value = %v, want %q", got, "value")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "show",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.String("format", "text", "output format")
			flagSet.Bool("trace", false, "print resolver attempts")
			return flagSet
		},
		Run: func(context.Context, []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--fromat", "json"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	message := err.Error()
	if !strings.Contains(message, "did you mean --format") {
		t.Errorf("error = %q, want suggestion for --format", message)
	}
	if !strings.Contains(message, "--help") {
		t.Errorf("error = %q, should point to --help", message)
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "gfxinfo",
		Subcommands: []*Command{
			{Name: "show"},
			{Name: "serve"},
			{Name: "version"},
		},
	}

	err := root.Execute(context.Background(), []string{"vresion"})
	if err == nil {
		t.Fatal("Execute() = nil, want error")
	}
	if !strings.Contains(err.Error(), `did you mean "version"`) {
		t.Errorf("error = %q, want suggestion for version", err)
	}

	err = root.Execute(context.Background(), []string{"zzzzzzzz"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want no suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "gfxinfo",
		Output:      &help,
		Subcommands: []*Command{{Name: "show", Summary: "Print the active GPU"}},
	}
	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "Print the active GPU") {
		t.Errorf("help output missing subcommand summary:\n%s", help.String())
	}
}

func TestCommand_Execute_RunError(t *testing.T) {
	sentinel := errors.New("boom")
	command := &Command{Name: "show", Run: func(context.Context, []string) error { return sentinel }}
	if err := command.Execute(context.Background(), nil); !errors.Is(err, sentinel) {
		t.Errorf("Execute() = %v, want %v", err, sentinel)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "gfxinfo",
		Description: "Report the active GPU.",
		Default:     "show",
		Output:      &help,
		Subcommands: []*Command{
			{
				Name:    "show",
				Summary: "Print identity and telemetry",
				Examples: []Example{
					{Description: "Machine-readable output", Command: "gfxinfo show --format json"},
				},
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
					flagSet.String("format", "text", "output format")
					return flagSet
				},
			},
			{Name: "version", Summary: "Print version information"},
		},
	}

	if err := root.Execute(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	output := help.String()
	for _, want := range []string{
		"Report the active GPU.",
		"gfxinfo <command> [flags]",
		"Print identity and telemetry (default)",
		"Print version information",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("root help missing %q:\n%s", want, output)
		}
	}

	help.Reset()
	if err := root.Execute(context.Background(), []string{"show", "--help"}); err != nil {
		t.Fatalf("Execute(show --help) error: %v", err)
	}
	output = help.String()
	for _, want := range []string{"gfxinfo show [flags]", "--format", "# Machine-readable output"} {
		if !strings.Contains(output, want) {
			t.Errorf("show help missing %q:\n%s", want, output)
		}
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 2}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatal("ExitError does not implement ExitCode")
	}
	if coder.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", coder.ExitCode())
	}
	if err.Error() != "exit code 2" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewCommandLoggerNonTerminal(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer, -4)
	logger.Debug("probe", "adapter", "amd")
	if !strings.HasPrefix(buffer.String(), "{") {
		t.Errorf("non-terminal output is not JSON: %q", buffer.String())
	}
	if IsTerminal(&buffer) {
		t.Error("IsTerminal(buffer) = true")
	}
}
