// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ioreg

import (
	"bytes"
	"fmt"

	"howett.net/plist"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Performance statistic keys published by IOAccelerator drivers.
// Apple silicon reports "In use system memory"; discrete GPUs in Intel
// Macs report "vramUsedBytes".
const (
	statInUseSystemMemory = "In use system memory"
	statVRAMUsedBytes     = "vramUsedBytes"
	statDeviceUtilization = "Device Utilization %"
)

// Accelerator is the subset of one IOAccelerator registry entry this
// package reads.
type Accelerator struct {
	// VendorID is the raw little-endian "vendor-id" property.
	VendorID []byte

	Model string

	// Statistics is the "PerformanceStatistics" dictionary. Values are
	// whatever the plist decoder produced, usually uint64.
	Statistics map[string]any
}

type registryEntry struct {
	VendorID              []byte         `plist:"vendor-id"`
	Model                 any            `plist:"model"`
	PerformanceStatistics map[string]any `plist:"PerformanceStatistics"`
}

// ParseAccelerators decodes the archive (-a) output of ioreg, which is
// a plist array with one dictionary per matching registry entry.
func ParseAccelerators(data []byte) ([]Accelerator, error) {
	var entries []registryEntry
	if _, err := plist.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding ioreg plist: %w", err)
	}
	accelerators := make([]Accelerator, len(entries))
	for index, entry := range entries {
		accelerators[index] = Accelerator{
			VendorID:   entry.VendorID,
			Model:      modelString(entry.Model),
			Statistics: entry.PerformanceStatistics,
		}
	}
	return accelerators, nil
}

// modelString accepts the two encodings drivers use for "model": a
// plist string, or data holding a NUL-terminated C string.
func modelString(value any) string {
	switch model := value.(type) {
	case string:
		return model
	case []byte:
		if end := bytes.IndexByte(model, 0); end >= 0 {
			model = model[:end]
		}
		return string(model)
	default:
		return ""
	}
}

// Descriptor maps the entry onto a GPU descriptor. The vendor is the
// hex rendering of "vendor-id" rather than a name, and the registry
// carries neither a family nor a device id.
func (a Accelerator) Descriptor() hwinfo.Descriptor {
	return hwinfo.NewDescriptor(hwinfo.ReversedHex(a.VendorID), a.Model, "", 0)
}

// UsedVRAM returns the driver's in-use memory figure, or 0.
func (a Accelerator) UsedVRAM() uint64 {
	if used, ok := a.statistic(statInUseSystemMemory); ok {
		return used
	}
	used, _ := a.statistic(statVRAMUsedBytes)
	return used
}

// LoadPercent returns the device utilization, or 0.
func (a Accelerator) LoadPercent() uint32 {
	load, _ := a.statistic(statDeviceUtilization)
	return hwinfo.ClampPercent(load)
}

func (a Accelerator) statistic(key string) (uint64, bool) {
	value, ok := a.Statistics[key]
	if !ok {
		return 0, false
	}
	switch number := value.(type) {
	case uint64:
		return number, true
	case int64:
		if number < 0 {
			return 0, true
		}
		return uint64(number), true
	case float64:
		return hwinfo.RoundCounter(number), true
	case float32:
		return hwinfo.RoundCounter(float64(number)), true
	default:
		return 0, false
	}
}
