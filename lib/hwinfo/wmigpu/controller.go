// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmigpu

import (
	"strconv"
	"strings"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// controllerQuery selects only the Win32_VideoController columns the
// descriptor uses.
const controllerQuery = "SELECT Name, VideoProcessor, AdapterCompatibility, AdapterRAM, PNPDeviceID FROM Win32_VideoController"

// Controller is one Win32_VideoController row.
type Controller struct {
	Name                 string
	VideoProcessor       string
	AdapterCompatibility string

	// AdapterRAM is a uint32 in WMI, so adapters with 4 GiB or more
	// report a saturated value.
	AdapterRAM uint32

	// PNPDeviceID looks like PCI\VEN_10DE&DEV_2684&SUBSYS_...
	PNPDeviceID string
}

// Descriptor maps the row onto a GPU descriptor. AdapterCompatibility
// names the driver's vendor ("NVIDIA", "Advanced Micro Devices, Inc.")
// and VideoProcessor names the chip series, so they become vendor and
// family respectively.
func (c Controller) Descriptor() hwinfo.Descriptor {
	return hwinfo.NewDescriptor(
		c.AdapterCompatibility,
		c.Name,
		c.VideoProcessor,
		uint32(ParsePNPField(c.PNPDeviceID, "DEV_")),
	)
}

// ParsePNPField extracts the four hex digits after key ("VEN_" or
// "DEV_") in a PnP device instance path. Missing or malformed fields
// yield 0.
func ParsePNPField(pnp, key string) uint16 {
	upper := strings.ToUpper(pnp)
	index := strings.Index(upper, key)
	if index < 0 || len(upper) < index+len(key)+4 {
		return 0
	}
	digits := upper[index+len(key) : index+len(key)+4]
	value, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0
	}
	return uint16(value)
}
