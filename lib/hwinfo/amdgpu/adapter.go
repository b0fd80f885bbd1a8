// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package amdgpu

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Options configures an Adapter. Zero values select the real system
// paths.
type Options struct {
	// SysRoot is the sysfs mount point. Default "/sys".
	SysRoot string

	// DevRoot is the devfs mount point. Default "/dev".
	DevRoot string

	// IDsPath is the libdrm marketing-name table. Default
	// DefaultIDsPath. A missing file is not an error; models then
	// fall back to DefaultModelName.
	IDsPath string

	Logger *slog.Logger
}

// Adapter implements hwinfo.Adapter for the amdgpu driver.
type Adapter struct {
	sysRoot string
	devRoot string
	idsPath string
	logger  *slog.Logger

	// open is replaced in tests to avoid real ioctls.
	open func(path string) (device, error)
}

// NewAdapter returns an adapter configured by options.
func NewAdapter(options Options) *Adapter {
	adapter := &Adapter{
		sysRoot: options.SysRoot,
		devRoot: options.DevRoot,
		idsPath: options.IDsPath,
		logger:  options.Logger,
		open:    openRenderNode,
	}
	if adapter.sysRoot == "" {
		adapter.sysRoot = "/sys"
	}
	if adapter.devRoot == "" {
		adapter.devRoot = "/dev"
	}
	if adapter.idsPath == "" {
		adapter.idsPath = DefaultIDsPath
	}
	if adapter.logger == nil {
		adapter.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return adapter
}

func (a *Adapter) Kind() hwinfo.Kind { return hwinfo.KindAMD }

// Probe selects the first PCI device bound to amdgpu, opens its render
// node, and resolves identity with AMDGPU_INFO_DEV_INFO. The first
// bound device is a heuristic for "active"; it is not checked against
// the display that is actually driving output.
func (a *Adapter) Probe() (hwinfo.Session, error) {
	devices, err := a.boundDevices()
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("amdgpu: driver has no bound devices: %w", hwinfo.ErrNotFound)
	}

	devicePath := devices[0]
	pci := hwinfo.ParsePCIUevent(devicePath)

	renderName, err := renderNodeName(devicePath)
	if err != nil {
		return nil, fmt.Errorf("amdgpu: %s: %w: %v", filepath.Base(devicePath), hwinfo.ErrSourceUnavailable, err)
	}
	renderPath := filepath.Join(a.devRoot, "dri", renderName)

	handle, err := a.open(renderPath)
	if err != nil {
		a.logger.Warn("cannot open amdgpu render node",
			"render_node", renderPath,
			"pci_slot", pci.Slot,
			"error", err)
		return nil, fmt.Errorf("amdgpu: open %s: %w: %v", renderPath, hwinfo.ErrSourceUnavailable, err)
	}

	info, err := handle.deviceInfo()
	if err != nil {
		handle.Close()
		return nil, fmt.Errorf("amdgpu: %s: %w: %v", renderPath, hwinfo.ErrSourceUnavailable, err)
	}

	names, err := LoadNameTable(a.idsPath)
	if err != nil {
		a.logger.Debug("amdgpu name table unavailable", "path", a.idsPath, "error", err)
	}

	descriptor := hwinfo.NewDescriptor(
		"AMD",
		names.ModelName(info.DeviceID, info.PCIRev),
		FamilyName(info.Family),
		info.DeviceID,
	)

	a.logger.Debug("amdgpu device resolved",
		"pci_slot", pci.Slot,
		"pci_vendor", hwinfo.VendorName(pci.VendorID),
		"driver", hwinfo.ReadDriverName(devicePath),
		"render_node", renderPath,
		"device_id", fmt.Sprintf("0x%04x", info.DeviceID),
		"family", info.Family)

	return &session{
		descriptor: descriptor,
		device:     handle,
		devicePath: devicePath,
		pciSlot:    pci.Slot,
		logger:     a.logger,
	}, nil
}

// boundDevices lists the sysfs device paths bound to amdgpu, in PCI
// address order.
func (a *Adapter) boundDevices() ([]string, error) {
	driverPath := filepath.Join(a.sysRoot, "bus/pci/drivers/amdgpu")
	entries, err := os.ReadDir(driverPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("amdgpu: driver not loaded: %w", hwinfo.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("amdgpu: reading %s: %w: %v", driverPath, hwinfo.ErrSourceUnavailable, err)
	}

	var devices []string
	for _, entry := range entries {
		if hwinfo.IsPCIAddress(entry.Name()) {
			devices = append(devices, filepath.Join(driverPath, entry.Name()))
		}
	}
	return devices, nil
}

// renderNodeName finds the renderD* entry in a PCI device's drm
// directory. The card index and render node index do not necessarily
// match (card0 may be renderD129), so the name is read rather than
// derived.
func renderNodeName(devicePath string) (string, error) {
	entries, err := os.ReadDir(filepath.Join(devicePath, "drm"))
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if hwinfo.IsRenderNode(entry.Name()) {
			return entry.Name(), nil
		}
	}
	return "", errors.New("no render node")
}

// session holds the open render node for one device. The mutex
// serializes ioctls and guards against use after Close.
type session struct {
	descriptor hwinfo.Descriptor
	devicePath string
	pciSlot    string
	logger     *slog.Logger

	mu     sync.Mutex
	device device
}

func (s *session) Descriptor() hwinfo.Descriptor { return s.descriptor }

// VRAM reads the VRAM heap through AMDGPU_INFO_MEMORY. When the ioctl
// fails the sysfs counters are used instead; each field that neither
// source can provide is 0.
func (s *session) VRAM() (total, used uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return 0, 0
	}
	memory, err := s.device.memoryInfo()
	if err == nil {
		return memory.VRAMTotal, memory.VRAMUsed
	}
	s.logger.Debug("memory info query failed, falling back to sysfs", "pci_slot", s.pciSlot, "error", err)

	total = hwinfo.ReadSysfsUint64(filepath.Join(s.devicePath, "mem_info_vram_total"))
	used = hwinfo.ReadSysfsUint64(filepath.Join(s.devicePath, "mem_info_vram_used"))
	return total, used
}

func (s *session) LoadPercent() uint32 {
	value := s.readSensor(SensorGPULoad, "GPU_LOAD")
	return hwinfo.ClampPercent(uint64(value))
}

// TemperatureMillidegrees reports GPU_TEMP, which the driver already
// expresses in millidegrees.
func (s *session) TemperatureMillidegrees() uint32 {
	return s.readSensor(SensorGPUTemp, "GPU_TEMP")
}

func (s *session) readSensor(sensorType uint32, name string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return 0
	}
	value, err := s.device.sensor(sensorType)
	if err != nil {
		s.logger.Debug("sensor query failed", "sensor", name, "pci_slot", s.pciSlot, "error", err)
		return 0
	}
	return value
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return nil
	}
	err := s.device.Close()
	s.device = nil
	return err
}
