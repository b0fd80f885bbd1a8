// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux && cgo

package nvidia

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Adapter implements hwinfo.Adapter over NVML.
type Adapter struct {
	logger *slog.Logger

	// library builds the NVML binding for one probe. Each probe gets
	// its own Init/Shutdown pair; NVML reference-counts Init
	// internally, so concurrent sessions coexist.
	library func() nvml.Interface
}

// NewAdapter returns an adapter configured by options.
func NewAdapter(options Options) *Adapter {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	libraryPath := options.LibraryPath
	return &Adapter{
		logger: logger,
		library: func() nvml.Interface {
			if libraryPath != "" {
				return nvml.New(nvml.WithLibraryPath(libraryPath))
			}
			return nvml.New()
		},
	}
}

func (a *Adapter) Kind() hwinfo.Kind { return hwinfo.KindNvidia }

// Probe initializes NVML and resolves device index 0. Index 0 is the
// device NVML enumerates first, not necessarily the one driving a
// display.
func (a *Adapter) Probe() (hwinfo.Session, error) {
	library := a.library()
	if ret := library.Init(); ret != nvml.SUCCESS {
		return nil, fmt.Errorf("nvidia: nvml init: %w: %v", hwinfo.ErrSourceUnavailable, ret)
	}

	descriptor, device, err := a.resolve(library)
	if err != nil {
		if ret := library.Shutdown(); ret != nvml.SUCCESS {
			a.logger.Debug("nvml shutdown failed", "error", ret)
		}
		return nil, err
	}

	a.logger.Debug("nvidia device resolved",
		"model", descriptor.Model,
		"family", descriptor.Family,
		"device_id", fmt.Sprintf("0x%08x", descriptor.DeviceID))

	return &session{
		descriptor: descriptor,
		library:    library,
		device:     device,
		logger:     a.logger,
	}, nil
}

func (a *Adapter) resolve(library nvml.Interface) (hwinfo.Descriptor, nvml.Device, error) {
	count, ret := library.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return hwinfo.Descriptor{}, nil, fmt.Errorf("nvidia: device count: %w: %v", hwinfo.ErrSourceUnavailable, ret)
	}
	if count == 0 {
		return hwinfo.Descriptor{}, nil, fmt.Errorf("nvidia: no devices: %w", hwinfo.ErrNotFound)
	}

	device, ret := library.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return hwinfo.Descriptor{}, nil, fmt.Errorf("nvidia: device 0: %w: %v", hwinfo.ErrNotFound, ret)
	}

	name, ret := device.GetName()
	if ret != nvml.SUCCESS {
		return hwinfo.Descriptor{}, nil, fmt.Errorf("nvidia: device name: %w: %v", hwinfo.ErrSourceUnavailable, ret)
	}
	brand, ret := device.GetBrand()
	if ret != nvml.SUCCESS {
		return hwinfo.Descriptor{}, nil, fmt.Errorf("nvidia: device brand: %w: %v", hwinfo.ErrSourceUnavailable, ret)
	}
	pci, ret := device.GetPciInfo()
	if ret != nvml.SUCCESS {
		return hwinfo.Descriptor{}, nil, fmt.Errorf("nvidia: pci info: %w: %v", hwinfo.ErrSourceUnavailable, ret)
	}

	return hwinfo.NewDescriptor("Nvidia", name, BrandName(brand), pci.PciDeviceId), device, nil
}

// session holds an initialized NVML library and one device handle.
type session struct {
	descriptor hwinfo.Descriptor
	logger     *slog.Logger

	mu      sync.Mutex
	library nvml.Interface
	device  nvml.Device
}

func (s *session) Descriptor() hwinfo.Descriptor { return s.descriptor }

func (s *session) VRAM() (total, used uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return 0, 0
	}
	memory, ret := s.device.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		s.logger.Debug("nvml memory query failed", "error", ret)
		return 0, 0
	}
	return memory.Total, memory.Used
}

func (s *session) LoadPercent() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return 0
	}
	utilization, ret := s.device.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		s.logger.Debug("nvml utilization query failed", "error", ret)
		return 0
	}
	return hwinfo.ClampPercent(uint64(utilization.Gpu))
}

// TemperatureMillidegrees converts NVML's whole-degree die reading.
func (s *session) TemperatureMillidegrees() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return 0
	}
	celsius, ret := s.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		s.logger.Debug("nvml temperature query failed", "error", ret)
		return 0
	}
	return hwinfo.CelsiusToMillidegrees(celsius)
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.library == nil {
		return nil
	}
	ret := s.library.Shutdown()
	s.library = nil
	s.device = nil
	if ret != nvml.SUCCESS {
		return fmt.Errorf("nvidia: nvml shutdown: %v", ret)
	}
	return nil
}
