// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package amdgpu

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DRM ioctl constants from the kernel UAPI header
// include/uapi/drm/amdgpu_drm.h. These are stable ABI.
const (
	// ioctlAMDGPUInfo is DRM_IOCTL_AMDGPU_INFO, _IOW('d', 0x45, 64)
	// where 64 is sizeof(struct drm_amdgpu_info).
	//
	// Bit layout: direction(1=write) << 30 | size(64) << 16 | type('d') << 8 | nr(0x45)
	ioctlAMDGPUInfo = 0x40406445
)

// AMDGPU_INFO query types.
const (
	amdgpuInfoDevInfo = 0x16
	amdgpuInfoMemory  = 0x19
	amdgpuInfoSensor  = 0x1D
)

// drmAMDGPUInfoRequest mirrors struct drm_amdgpu_info: 8 (return_pointer)
// + 4 (return_size) + 4 (query) + 48 (union). Sensor queries put the
// sensor type in the first 4 bytes of the union; DEV_INFO and MEMORY
// take no union arguments.
type drmAMDGPUInfoRequest struct {
	returnPointer uint64
	returnSize    uint32
	query         uint32
	unionData     [48]byte
}

// drmAMDGPUHeapInfo mirrors struct drm_amdgpu_heap_info.
type drmAMDGPUHeapInfo struct {
	totalHeapSize  uint64
	usableHeapSize uint64
	heapUsage      uint64
	maxAllocation  uint64
}

// drmAMDGPUMemoryInfo mirrors struct drm_amdgpu_memory_info.
type drmAMDGPUMemoryInfo struct {
	vram              drmAMDGPUHeapInfo
	cpuAccessibleVRAM drmAMDGPUHeapInfo
	gtt               drmAMDGPUHeapInfo
}

// drmAMDGPUDeviceInfoPrefix is the leading part of struct
// drm_amdgpu_info_device. The kernel copies min(return_size,
// sizeof(struct)) bytes, so requesting only the prefix is valid.
type drmAMDGPUDeviceInfoPrefix struct {
	deviceID    uint32
	chipRev     uint32
	externalRev uint32
	pciRev      uint32
	family      uint32
}

// renderNode is a device backed by an open /dev/dri/renderD* file.
type renderNode struct {
	file *os.File
}

// openRenderNode opens a render node read-write, which is what the
// AMDGPU_INFO ioctl requires.
func openRenderNode(path string) (device, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &renderNode{file: file}, nil
}

func (r *renderNode) deviceInfo() (deviceInfo, error) {
	var raw drmAMDGPUDeviceInfoPrefix
	if err := r.info(amdgpuInfoDevInfo, unsafe.Pointer(&raw), uint32(unsafe.Sizeof(raw)), nil); err != nil {
		return deviceInfo{}, fmt.Errorf("amdgpu ioctl DEV_INFO: %w", err)
	}
	return deviceInfo{
		DeviceID: raw.deviceID,
		ChipRev:  raw.chipRev,
		PCIRev:   raw.pciRev,
		Family:   raw.family,
	}, nil
}

func (r *renderNode) memoryInfo() (memoryInfo, error) {
	var raw drmAMDGPUMemoryInfo
	if err := r.info(amdgpuInfoMemory, unsafe.Pointer(&raw), uint32(unsafe.Sizeof(raw)), nil); err != nil {
		return memoryInfo{}, fmt.Errorf("amdgpu ioctl MEMORY: %w", err)
	}
	return memoryInfo{
		VRAMTotal: raw.vram.totalHeapSize,
		VRAMUsed:  raw.vram.heapUsage,
	}, nil
}

func (r *renderNode) sensor(sensorType uint32) (uint32, error) {
	var result uint32
	var argument [4]byte
	binary.LittleEndian.PutUint32(argument[:], sensorType)
	if err := r.info(amdgpuInfoSensor, unsafe.Pointer(&result), 4, argument[:]); err != nil {
		return 0, fmt.Errorf("amdgpu ioctl sensor query 0x%x: %w", sensorType, err)
	}
	return result, nil
}

func (r *renderNode) Close() error {
	return r.file.Close()
}

// info issues one AMDGPU_INFO ioctl, writing up to size bytes into out.
func (r *renderNode) info(query uint32, out unsafe.Pointer, size uint32, argument []byte) error {
	var request drmAMDGPUInfoRequest
	request.returnPointer = uint64(uintptr(out))
	request.returnSize = size
	request.query = query
	copy(request.unionData[:], argument)

	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		r.file.Fd(),
		uintptr(ioctlAMDGPUInfo),
		uintptr(unsafe.Pointer(&request)),
	)
	if errno != 0 {
		return errno
	}
	return nil
}
