// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ioreg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// DefaultTimeout bounds each ioreg invocation.
const DefaultTimeout = 5 * time.Second

var registryArgs = []string{"-a", "-r", "-d", "1", "-c", "IOAccelerator"}

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Options configures an Adapter.
type Options struct {
	// Command is the ioreg binary. Default "ioreg" from PATH.
	Command string

	// Timeout bounds each invocation. Default DefaultTimeout.
	Timeout time.Duration

	// Runner replaces process execution, for tests. Default runs
	// Command with os/exec.
	Runner Runner

	Logger *slog.Logger
}

// Adapter implements hwinfo.Adapter over the I/O Kit registry.
type Adapter struct {
	command string
	timeout time.Duration
	run     Runner
	logger  *slog.Logger
}

func NewAdapter(options Options) *Adapter {
	adapter := &Adapter{
		command: options.Command,
		timeout: options.Timeout,
		run:     options.Runner,
		logger:  options.Logger,
	}
	if adapter.command == "" {
		adapter.command = "ioreg"
	}
	if adapter.timeout <= 0 {
		adapter.timeout = DefaultTimeout
	}
	if adapter.run == nil {
		adapter.run = execRunner
	}
	if adapter.logger == nil {
		adapter.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return adapter
}

func (a *Adapter) Kind() hwinfo.Kind { return hwinfo.KindIORegistry }

// Probe takes the first IOAccelerator entry.
func (a *Adapter) Probe() (hwinfo.Session, error) {
	accelerators, err := a.query()
	if err != nil {
		return nil, fmt.Errorf("ioreg: %w: %v", hwinfo.ErrSourceUnavailable, err)
	}
	if len(accelerators) == 0 {
		return nil, fmt.Errorf("ioreg: no IOAccelerator entries: %w", hwinfo.ErrNotFound)
	}

	descriptor := accelerators[0].Descriptor()
	a.logger.Debug("ioreg accelerator resolved",
		"vendor", descriptor.Vendor,
		"model", descriptor.Model,
		"entries", len(accelerators))

	return &session{adapter: a, descriptor: descriptor}, nil
}

func (a *Adapter) query() ([]Accelerator, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	output, err := a.run(ctx, a.command, registryArgs...)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", a.command, err)
	}
	return ParseAccelerators(output)
}

// session re-queries the registry for every telemetry read. ioreg has
// no handle to hold, so the session keeps only the identity.
type session struct {
	adapter    *Adapter
	descriptor hwinfo.Descriptor

	mu     sync.Mutex
	closed bool
}

func (s *session) Descriptor() hwinfo.Descriptor { return s.descriptor }

// current returns the first accelerator from a fresh query.
func (s *session) current() (Accelerator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Accelerator{}, false
	}
	accelerators, err := s.adapter.query()
	if err != nil || len(accelerators) == 0 {
		s.adapter.logger.Debug("ioreg telemetry query failed", "error", err, "entries", len(accelerators))
		return Accelerator{}, false
	}
	return accelerators[0], true
}

// VRAM reports only used memory: the registry has no total for
// unified-memory accelerators.
func (s *session) VRAM() (total, used uint64) {
	accelerator, ok := s.current()
	if !ok {
		return 0, 0
	}
	return 0, accelerator.UsedVRAM()
}

func (s *session) LoadPercent() uint32 {
	accelerator, ok := s.current()
	if !ok {
		return 0
	}
	return accelerator.LoadPercent()
}

func (s *session) TemperatureMillidegrees() uint32 { return 0 }

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
