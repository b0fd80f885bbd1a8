// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdgpu

// AMDGPU_INFO_SENSOR sub-query types.
const (
	// SensorGFXSCLK is the current graphics clock in MHz.
	SensorGFXSCLK = 0x1

	// SensorGFXMCLK is the current memory clock in MHz.
	SensorGFXMCLK = 0x2

	// SensorGPUTemp is the GPU temperature in millidegrees Celsius.
	SensorGPUTemp = 0x3

	// SensorGPULoad is the GPU utilization percentage (0-100).
	SensorGPULoad = 0x4

	// SensorGPUAvgPower is the average GPU power draw in watts.
	SensorGPUAvgPower = 0x5
)

// deviceInfo is the subset of AMDGPU_INFO_DEV_INFO used for identity.
type deviceInfo struct {
	DeviceID uint32
	ChipRev  uint32
	PCIRev   uint32
	Family   uint32
}

// memoryInfo is the VRAM heap from AMDGPU_INFO_MEMORY.
type memoryInfo struct {
	VRAMTotal uint64
	VRAMUsed  uint64
}

// device is the driver surface a session reads from. On Linux it is
// an open render node; tests substitute a scripted implementation.
type device interface {
	deviceInfo() (deviceInfo, error)
	memoryInfo() (memoryInfo, error)
	sensor(sensorType uint32) (uint32, error)
	Close() error
}
