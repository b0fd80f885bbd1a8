// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

// PCI vendor identifiers for the GPU vendors this package knows by name.
const (
	VendorIDAMD    uint16 = 0x1002
	VendorIDNvidia uint16 = 0x10DE
	VendorIDIntel  uint16 = 0x8086
	VendorIDApple  uint16 = 0x106B
)

// VendorName maps a PCI vendor id to its display name, or "Unknown".
func VendorName(vendorID uint16) string {
	switch vendorID {
	case VendorIDAMD:
		return "AMD"
	case VendorIDNvidia:
		return "Nvidia"
	case VendorIDIntel:
		return "Intel"
	case VendorIDApple:
		return "Apple"
	default:
		return unknownName
	}
}
