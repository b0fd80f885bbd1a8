// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"fmt"
	"strings"
)

// Kind identifies which adapter produced a session.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAMD
	KindNvidia
	KindIntel
	KindWMI
	KindIORegistry
)

var kindNames = map[Kind]string{
	KindAMD:        "amd",
	KindNvidia:     "nvidia",
	KindIntel:      "intel",
	KindWMI:        "wmi",
	KindIORegistry: "ioreg",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the kind as its short name so reports and config
// files carry "amd" rather than an integer.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind maps a short adapter name ("amd", "nvidia", "intel",
// "wmi", "ioreg") to its Kind. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == lowered {
			return kind, nil
		}
	}
	return KindUnknown, fmt.Errorf("hwinfo: unknown adapter kind %q", name)
}

// Descriptor is the immutable identity of a resolved GPU. Build one
// with [NewDescriptor]; the zero value is never returned by an adapter.
type Descriptor struct {
	// Vendor is a human-readable vendor name ("AMD", "Nvidia") or, for
	// sources that only expose a numeric id, a hex rendering of it.
	Vendor string `json:"vendor" yaml:"vendor"`

	// Model is the marketing name ("Radeon RX 7900 XTX").
	Model string `json:"model" yaml:"model"`

	// Family is the chip family or brand ("Navi", "GeForceRTX"), or
	// "N/A" when the source has none.
	Family string `json:"family" yaml:"family"`

	// DeviceID is the vendor-assigned device identifier. Zero means
	// unknown and is never used to signal an error.
	DeviceID uint32 `json:"device_id" yaml:"device_id"`
}

const (
	unknownName    = "Unknown"
	familyFallback = "N/A"
)

// NewDescriptor resolves every identity field before returning, so a
// partially populated descriptor is never observable. Empty vendor and
// model become "Unknown"; an empty family becomes "N/A".
func NewDescriptor(vendor, model, family string, deviceID uint32) Descriptor {
	vendor = strings.TrimSpace(vendor)
	model = strings.TrimSpace(model)
	family = strings.TrimSpace(family)
	if vendor == "" {
		vendor = unknownName
	}
	if model == "" {
		model = unknownName
	}
	if family == "" {
		family = familyFallback
	}
	return Descriptor{
		Vendor:   vendor,
		Model:    model,
		Family:   family,
		DeviceID: deviceID,
	}
}

// Snapshot is one point-in-time reading of a session's telemetry.
// Every field uses 0 as the "unavailable" sentinel.
type Snapshot struct {
	TotalVRAMBytes          uint64 `json:"total_vram_bytes" yaml:"total_vram_bytes"`
	UsedVRAMBytes           uint64 `json:"used_vram_bytes" yaml:"used_vram_bytes"`
	LoadPercent             uint32 `json:"load_percent" yaml:"load_percent"`
	TemperatureMillidegrees uint32 `json:"temperature_millidegrees" yaml:"temperature_millidegrees"`
}

// Adapter wraps one native GPU data source behind a uniform probe.
// Adapters are stateless between probes: all native state lives in the
// Session that a successful Probe returns.
type Adapter interface {
	// Kind identifies this adapter in resolver traces.
	Kind() Kind

	// Probe initializes the native facility, selects a device, and
	// resolves its identity. On success the returned session owns the
	// native handle. Failures wrap ErrSourceUnavailable or ErrNotFound,
	// and any resource opened along the way has been released.
	Probe() (Session, error)
}

// Session is a live handle on one device. Telemetry methods never
// fail outward: a metric that cannot be read returns 0. Sessions are
// safe for concurrent use.
type Session interface {
	// Descriptor returns the identity captured at probe time.
	Descriptor() Descriptor

	// VRAM returns total and used video memory in bytes.
	VRAM() (total, used uint64)

	// LoadPercent returns the engine utilization in 0-100.
	LoadPercent() uint32

	// TemperatureMillidegrees returns the die temperature in
	// millidegrees Celsius.
	TemperatureMillidegrees() uint32

	// Close releases the native handle. Calling Close more than once
	// is safe.
	Close() error
}

// ReadSnapshot reads every telemetry field from a session. VRAM total
// and used come from a single query so they describe the same moment.
func ReadSnapshot(session Session) Snapshot {
	total, used := session.VRAM()
	return Snapshot{
		TotalVRAMBytes:          total,
		UsedVRAMBytes:           used,
		LoadPercent:             session.LoadPercent(),
		TemperatureMillidegrees: session.TemperatureMillidegrees(),
	}
}
