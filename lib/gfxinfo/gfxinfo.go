// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gfxinfo reports the identity and live telemetry of the
// machine's active GPU through one platform-neutral handle.
//
//	gpu, err := gfxinfo.ActiveGPU()
//	if errors.Is(err, hwinfo.ErrNoGPUFound) { ... }
//	defer gpu.Close()
//	fmt.Println(gpu.Vendor(), gpu.Model(), gpu.LoadPercent())
//
// ActiveGPU tries the platform's adapters in a fixed order (Linux:
// AMD, Nvidia, Intel; Windows: Nvidia, WMI; macOS: IORegistry) and
// returns the first that resolves a device. Identity is captured once;
// every telemetry accessor queries the native source again.
package gfxinfo

import (
	"io"
	"log/slog"

	"github.com/bureau-foundation/gfxinfo/lib/config"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Option configures ActiveGPU.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	trace       func(hwinfo.Attempt)
	adapters    []hwinfo.Adapter
	adaptersSet bool
	config      *config.Config
}

// WithLogger receives a Debug record for every adapter attempt and is
// passed to the platform adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTrace calls fn once per adapter attempt, in resolution order,
// whether or not resolution succeeds.
func WithTrace(fn func(hwinfo.Attempt)) Option {
	return func(o *options) { o.trace = fn }
}

// WithAdapters replaces the platform chain. Config-disabled kinds are
// not filtered from an explicit chain.
func WithAdapters(adapters ...hwinfo.Adapter) Option {
	return func(o *options) {
		o.adapters = adapters
		o.adaptersSet = true
	}
}

// WithConfig supplies adapter settings and the disabled-kind list.
// Without it [config.Default] applies.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.config = cfg }
}

// ActiveGPU resolves the active GPU. It builds the adapter chain,
// probes it once, and returns either a handle or an error matching
// hwinfo.ErrNoGPUFound. Nothing is cached between calls.
func ActiveGPU(opts ...Option) (*GPU, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.config == nil {
		o.config = config.Default()
	}

	chain := o.adapters
	if !o.adaptersSet {
		chain = enabled(platformAdapters(o.config, o.logger), o.config)
	}

	session, attempts, err := hwinfo.NewResolver(chain...).Resolve()
	for _, attempt := range attempts {
		o.logger.Debug("gpu adapter attempt",
			"adapter", attempt.Kind,
			"outcome", attempt.Outcome,
			"error", attempt.Err)
		if o.trace != nil {
			o.trace(attempt)
		}
	}
	if err != nil {
		return nil, err
	}

	winner := attempts[len(attempts)-1]
	return &GPU{
		session:    session,
		descriptor: session.Descriptor(),
		kind:       winner.Kind,
		attempts:   attempts,
	}, nil
}

// enabled drops adapters whose kind the config disables.
func enabled(adapters []hwinfo.Adapter, cfg *config.Config) []hwinfo.Adapter {
	kept := adapters[:0:0]
	for _, adapter := range adapters {
		if !cfg.Disabled(adapter.Kind()) {
			kept = append(kept, adapter)
		}
	}
	return kept
}

// GPU is a resolved GPU. Identity accessors return the values captured
// at resolution and never change. Telemetry accessors read the native
// source on every call and return 0 for anything it cannot provide.
// GPU is safe for concurrent use.
type GPU struct {
	session    hwinfo.Session
	descriptor hwinfo.Descriptor
	kind       hwinfo.Kind
	attempts   []hwinfo.Attempt
}

func (g *GPU) Vendor() string   { return g.descriptor.Vendor }
func (g *GPU) Model() string    { return g.descriptor.Model }
func (g *GPU) Family() string   { return g.descriptor.Family }
func (g *GPU) DeviceID() uint32 { return g.descriptor.DeviceID }

// Descriptor returns all four identity fields.
func (g *GPU) Descriptor() hwinfo.Descriptor { return g.descriptor }

// Kind identifies the adapter that resolved this GPU.
func (g *GPU) Kind() hwinfo.Kind { return g.kind }

// Attempts returns the resolver trace that led to this GPU; the last
// entry is the winner.
func (g *GPU) Attempts() []hwinfo.Attempt {
	return append([]hwinfo.Attempt(nil), g.attempts...)
}

func (g *GPU) TotalVRAMBytes() uint64 {
	total, _ := g.session.VRAM()
	return total
}

func (g *GPU) UsedVRAMBytes() uint64 {
	_, used := g.session.VRAM()
	return used
}

// LoadPercent returns utilization in 0-100.
func (g *GPU) LoadPercent() uint32 { return g.session.LoadPercent() }

// TemperatureMillidegrees returns the die temperature in thousandths of
// a degree Celsius.
func (g *GPU) TemperatureMillidegrees() uint32 { return g.session.TemperatureMillidegrees() }

// Snapshot reads every telemetry field, with total and used VRAM from
// one query.
func (g *GPU) Snapshot() hwinfo.Snapshot { return hwinfo.ReadSnapshot(g.session) }

// Close releases the native handle. Telemetry read after Close is 0.
func (g *GPU) Close() error { return g.session.Close() }
