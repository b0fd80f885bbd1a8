// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux && cgo

package nvidia

import "github.com/NVIDIA/go-nvml/pkg/nvml"

// brandNames maps NVML product brands to the family strings reported
// in descriptors. BRAND_NVIDIA_VGAMING shares its value with
// BRAND_NVIDIA_CLOUD_GAMING and therefore reports "CloudGaming".
var brandNames = map[nvml.BrandType]string{
	nvml.BRAND_UNKNOWN:             "Unknown",
	nvml.BRAND_QUADRO:              "Quadro",
	nvml.BRAND_TESLA:               "Tesla",
	nvml.BRAND_NVS:                 "NVS",
	nvml.BRAND_GRID:                "GRID",
	nvml.BRAND_GEFORCE:             "GeForce",
	nvml.BRAND_TITAN:               "Titan",
	nvml.BRAND_NVIDIA_VAPPS:        "VApps",
	nvml.BRAND_NVIDIA_VPC:          "VPC",
	nvml.BRAND_NVIDIA_VCS:          "VCS",
	nvml.BRAND_NVIDIA_VWS:          "VWS",
	nvml.BRAND_NVIDIA_CLOUD_GAMING: "CloudGaming",
	nvml.BRAND_QUADRO_RTX:          "QuadroRTX",
	nvml.BRAND_NVIDIA_RTX:          "NvidiaRTX",
	nvml.BRAND_NVIDIA:              "Nvidia",
	nvml.BRAND_GEFORCE_RTX:         "GeForceRTX",
	nvml.BRAND_TITAN_RTX:           "TitanRTX",
}

// BrandName returns the family string for an NVML brand. Brands newer
// than this table report "Unknown".
func BrandName(brand nvml.BrandType) string {
	if name, ok := brandNames[brand]; ok {
		return name
	}
	return "Unknown"
}
