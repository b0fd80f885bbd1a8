// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package amdgpu

// Family ids reported in drm_amdgpu_info_device.family
// (AMDGPU_FAMILY_* in amdgpu_drm.h).
const (
	FamilySI       = 110
	FamilyCI       = 120
	FamilyKV       = 125
	FamilyVI       = 130
	FamilyCZ       = 135
	FamilyAI       = 141
	FamilyRV       = 142
	FamilyNV       = 143
	FamilyVGH      = 144
	FamilyGC11_0_0 = 145
	FamilyYC       = 146
	FamilyGC11_0_1 = 148
	FamilyGC10_3_6 = 149
	FamilyGC11_5_0 = 150
	FamilyGC10_3_7 = 151
	FamilyGC12_0_0 = 152
)

var familyNames = map[uint32]string{
	FamilySI:       "Southern Islands",
	FamilyCI:       "Sea Islands",
	FamilyKV:       "Kaveri",
	FamilyVI:       "Volcanic Islands",
	FamilyCZ:       "Carrizo",
	FamilyAI:       "Arctic Islands",
	FamilyRV:       "Raven",
	FamilyNV:       "Navi",
	FamilyVGH:      "VanGogh",
	FamilyGC11_0_0: "GC 11.0.0",
	FamilyYC:       "Yellow Carp",
	FamilyGC11_0_1: "GC 11.0.1",
	FamilyGC10_3_6: "GC 10.3.6",
	FamilyGC11_5_0: "GC 11.5.0",
	FamilyGC10_3_7: "GC 10.3.7",
	FamilyGC12_0_0: "GC 12.0.0",
}

// FamilyName returns the display name for an amdgpu family id, or ""
// for ids this table does not know.
func FamilyName(family uint32) string {
	return familyNames[family]
}
