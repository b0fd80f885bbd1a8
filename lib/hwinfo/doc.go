// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hwinfo defines the vendor-agnostic GPU model shared by every
// telemetry source: the [Descriptor] identity record, the [Snapshot]
// telemetry record, the [Adapter] and [Session] contracts each source
// implements, and the [Resolver] that walks an ordered adapter chain
// until one of them finds a device.
//
// # Adapters
//
// Each vendor or platform source lives in its own subpackage:
//
//   - hwinfo/amdgpu: amdgpu kernel driver via DRM ioctls on the render
//     node (pure Go, no cgo). Identity from AMDGPU_INFO_DEV_INFO plus
//     the libdrm amdgpu.ids name table; telemetry from
//     AMDGPU_INFO_MEMORY and AMDGPU_INFO_SENSOR.
//
//   - hwinfo/nvidia: NVML through go-nvml. Requires cgo on Linux;
//     other builds get an adapter that always reports
//     [ErrSourceUnavailable].
//
//   - hwinfo/intel: placeholder that always reports
//     [ErrSourceUnavailable].
//
//   - hwinfo/wmigpu: Win32_VideoController via WMI for identity, PDH
//     performance counters for used VRAM and load.
//
//   - hwinfo/ioreg: the macOS IORegistry IOAccelerator class via the
//     ioreg tool's plist output.
//
// # Failure model
//
// Probing distinguishes a facility that could not start
// ([ErrSourceUnavailable]) from one that started and found nothing
// ([ErrNotFound]). The resolver absorbs both and tries the next
// adapter; only when every adapter fails does it return
// [ErrNoGPUFound]. Once a session exists, telemetry reads never fail:
// a metric that cannot be read is reported as 0.
//
// # Units
//
// All sources report bytes, millidegrees Celsius, and integer percent.
// The conversions live in units.go.
package hwinfo
