// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Host is the machine context printed alongside a GPU. MemoryBytes
// matters for unified-memory GPUs, which report no VRAM total of
// their own.
type Host struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platform_version" yaml:"platform_version"`
	KernelVersion   string `json:"kernel_version" yaml:"kernel_version"`
	Arch            string `json:"arch" yaml:"arch"`
	MemoryBytes     uint64 `json:"memory_bytes" yaml:"memory_bytes"`
}

// CollectHost reads host facts through gopsutil. A failed memory read
// leaves MemoryBytes at 0.
func CollectHost() (*Host, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("reading host info: %w", err)
	}
	result := &Host{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Arch:            info.KernelArch,
	}
	if memory, err := mem.VirtualMemory(); err == nil {
		result.MemoryBytes = memory.Total
	}
	return result, nil
}
