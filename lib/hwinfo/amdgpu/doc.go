// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package amdgpu resolves and monitors AMD GPUs driven by the amdgpu
// kernel driver. The device is found through sysfs
// (/sys/bus/pci/drivers/amdgpu) and queried through DRM ioctls on its
// render node (/dev/dri/renderD*), the same interface rocm-smi and
// libdrm use. Opening the render node requires video or render group
// membership.
//
// No cgo is required: all ioctl calls use golang.org/x/sys/unix with
// struct layouts matching the kernel UAPI header
// include/uapi/drm/amdgpu_drm.h.
package amdgpu
