// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmigpu

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Options configures an Adapter.
type Options struct {
	Logger *slog.Logger
}

// Adapter implements hwinfo.Adapter over WMI and PDH.
type Adapter struct {
	logger *slog.Logger

	query    func() ([]Controller, error)
	counters func() (counterSource, error)
}

// NewAdapter returns an adapter backed by the system's WMI service and
// pdh.dll.
func NewAdapter(options Options) *Adapter {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{
		logger:   logger,
		query:    queryControllers,
		counters: openCounters,
	}
}

func (a *Adapter) Kind() hwinfo.Kind { return hwinfo.KindWMI }

// Probe takes the first Win32_VideoController row. A PDH failure does
// not fail the probe: identity is already known, and the session then
// reports 0 for used VRAM and load.
func (a *Adapter) Probe() (hwinfo.Session, error) {
	controllers, err := a.query()
	if err != nil {
		return nil, fmt.Errorf("wmigpu: %s: %w: %v", controllerQuery, hwinfo.ErrSourceUnavailable, err)
	}
	if len(controllers) == 0 {
		return nil, fmt.Errorf("wmigpu: Win32_VideoController is empty: %w", hwinfo.ErrNotFound)
	}

	controller := controllers[0]
	descriptor := controller.Descriptor()

	source, err := a.counters()
	if err != nil {
		a.logger.Warn("GPU performance counters unavailable", "error", err)
		source = nil
	}

	a.logger.Debug("wmi device resolved",
		"model", descriptor.Model,
		"pnp_device_id", controller.PNPDeviceID,
		"adapter_ram", controller.AdapterRAM)

	return &session{
		descriptor: descriptor,
		totalVRAM:  uint64(controller.AdapterRAM),
		logger:     a.logger,
		source:     source,
	}, nil
}

// session holds the identity and the open PDH query.
type session struct {
	descriptor hwinfo.Descriptor
	totalVRAM  uint64
	logger     *slog.Logger

	mu     sync.Mutex
	source counterSource
	closed bool
}

func (s *session) Descriptor() hwinfo.Descriptor { return s.descriptor }

// VRAM reports AdapterRAM as captured at probe time alongside the
// current dedicated usage.
func (s *session) VRAM() (total, used uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, 0
	}
	sample, ok := s.collect()
	if !ok {
		return s.totalVRAM, 0
	}
	return s.totalVRAM, MaxCounter(sample.DedicatedUsage)
}

func (s *session) LoadPercent() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	sample, ok := s.collect()
	if !ok {
		return 0
	}
	return hwinfo.ClampPercent(MaxCounter(sample.Utilization))
}

// TemperatureMillidegrees is always 0: neither WMI nor PDH exposes a
// vendor-neutral die temperature.
func (s *session) TemperatureMillidegrees() uint32 { return 0 }

// collect must be called with mu held.
func (s *session) collect() (Sample, bool) {
	if s.source == nil {
		return Sample{}, false
	}
	sample, err := s.source.Collect()
	if err != nil {
		s.logger.Debug("PDH collection failed", "error", err)
		return Sample{}, false
	}
	return sample, true
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.source == nil {
		return nil
	}
	err := s.source.Close()
	s.source = nil
	return err
}
