// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"encoding/json"
	"testing"
)

func TestNewDescriptorFillsFallbacks(t *testing.T) {
	tests := []struct {
		name                  string
		vendor, model, family string
		want                  Descriptor
	}{
		{
			name:   "complete",
			vendor: "AMD", model: "Radeon RX 7900 XTX", family: "GC 11.0.0",
			want: Descriptor{Vendor: "AMD", Model: "Radeon RX 7900 XTX", Family: "GC 11.0.0", DeviceID: 0x744c},
		},
		{
			name: "all empty",
			want: Descriptor{Vendor: "Unknown", Model: "Unknown", Family: "N/A", DeviceID: 0x744c},
		},
		{
			name:   "whitespace trimmed",
			vendor: "  Nvidia ", model: "\tGeForce RTX 3070\n", family: " ",
			want: Descriptor{Vendor: "Nvidia", Model: "GeForce RTX 3070", Family: "N/A", DeviceID: 0x744c},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := NewDescriptor(test.vendor, test.model, test.family, 0x744c)
			if got != test.want {
				t.Errorf("NewDescriptor = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindAMD, KindNvidia, KindIntel, KindWMI, KindIORegistry} {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", kind.String(), err)
		}
		if parsed != kind {
			t.Errorf("ParseKind(%q) = %v, want %v", kind.String(), parsed, kind)
		}
	}
	if parsed, err := ParseKind(" NVIDIA "); err != nil || parsed != KindNvidia {
		t.Errorf("ParseKind(\" NVIDIA \") = %v, %v; want nvidia", parsed, err)
	}
	if _, err := ParseKind("voodoo"); err == nil {
		t.Error("ParseKind(\"voodoo\") succeeded, want error")
	}
	if KindUnknown.String() != "unknown" {
		t.Errorf("KindUnknown.String() = %q", KindUnknown.String())
	}
}

func TestAttemptJSONUsesNames(t *testing.T) {
	data, err := json.Marshal(Attempt{Kind: KindWMI, Outcome: OutcomeNotFound})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"adapter":"wmi","outcome":"not-found"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestVendorName(t *testing.T) {
	tests := []struct {
		id   uint16
		want string
	}{
		{0x1002, "AMD"},
		{0x10DE, "Nvidia"},
		{0x8086, "Intel"},
		{0x106B, "Apple"},
		{0x1af4, "Unknown"},
	}
	for _, test := range tests {
		if got := VendorName(test.id); got != test.want {
			t.Errorf("VendorName(0x%04x) = %q, want %q", test.id, got, test.want)
		}
	}
}
