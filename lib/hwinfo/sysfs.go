// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PCIIdentity is the identity a PCI device advertises in its sysfs
// uevent file.
type PCIIdentity struct {
	VendorID uint16
	DeviceID uint16
	Slot     string
}

// ParsePCIUevent reads the device's uevent file. The file contains
// lines like:
//
//	PCI_ID=1002:744A
//	PCI_SLOT_NAME=0000:c3:00.0
//
// Missing or malformed fields are left zero.
func ParsePCIUevent(devicePath string) PCIIdentity {
	var identity PCIIdentity

	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return identity
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "PCI_ID":
			vendor, device, ok := strings.Cut(value, ":")
			if !ok {
				continue
			}
			if parsed, err := strconv.ParseUint(vendor, 16, 16); err == nil {
				identity.VendorID = uint16(parsed)
			}
			if parsed, err := strconv.ParseUint(device, 16, 16); err == nil {
				identity.DeviceID = uint16(parsed)
			}
		case "PCI_SLOT_NAME":
			identity.Slot = value
		}
	}
	return identity
}

// ReadDriverName returns the kernel driver bound to a PCI device: the
// basename of the "driver" symlink in the device directory.
func ReadDriverName(devicePath string) string {
	link, err := os.Readlink(filepath.Join(devicePath, "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(link)
}

// IsRenderNode reports whether a DRM device name is a render node
// (renderD128, renderD129, ...).
func IsRenderNode(name string) bool {
	suffix, found := strings.CutPrefix(name, "renderD")
	if !found || suffix == "" {
		return false
	}
	for _, character := range suffix {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}

// IsPCIAddress reports whether name looks like a PCI bus address
// (0000:c3:00.0). Driver directories in sysfs mix device links with
// control files such as "bind" and "new_id".
func IsPCIAddress(name string) bool {
	domain, rest, found := strings.Cut(name, ":")
	if !found || len(domain) != 4 {
		return false
	}
	bus, rest, found := strings.Cut(rest, ":")
	if !found || len(bus) != 2 {
		return false
	}
	device, function, found := strings.Cut(rest, ".")
	if !found || len(device) != 2 || len(function) != 1 {
		return false
	}
	for _, part := range []string{domain, bus, device, function} {
		if _, err := strconv.ParseUint(part, 16, 16); err != nil {
			return false
		}
	}
	return true
}

// ReadSysfsString reads a single-line sysfs file and returns its
// trimmed content. Returns "" on any error.
func ReadSysfsString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ReadSysfsUint64 reads an unsigned integer from a sysfs file.
// Returns 0 on error.
func ReadSysfsUint64(path string) uint64 {
	value := ReadSysfsString(path)
	if value == "" {
		return 0
	}
	result, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}
