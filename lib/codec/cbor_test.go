// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

func TestDescriptorRoundtrip(t *testing.T) {
	original := hwinfo.NewDescriptor("AMD", "Radeon RX 7900 XTX", "Navi", 0x744c)

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded hwinfo.Descriptor
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestJSONTagNamesKeys(t *testing.T) {
	data, err := Marshal(hwinfo.Snapshot{LoadPercent: 40})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"total_vram_bytes", "used_vram_bytes", "load_percent", "temperature_millidegrees"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("key %q missing from %v", key, decoded)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	// Map iteration order is random; deterministic encoding must not
	// depend on it.
	value := map[string]uint64{"load": 1, "temperature": 2, "vram": 3, "device": 4, "family": 5}

	first, err := Marshal(value)
	if err != nil {
		t.Fatal(err)
	}
	for range 20 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding is not deterministic:\n%x\n%x", first, again)
		}
	}
}

func TestTextMarshalerEncodesAsString(t *testing.T) {
	attempt := hwinfo.Attempt{Kind: hwinfo.KindNvidia, Outcome: hwinfo.OutcomeNotFound}

	data, err := Marshal(attempt)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"nvidia"`) {
		t.Errorf("notation %q does not carry the adapter name", notation)
	}
	if !strings.Contains(notation, `"not-found"`) {
		t.Errorf("notation %q does not carry the outcome name", notation)
	}

	var decoded struct {
		Kind hwinfo.Kind `json:"adapter"`
	}
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Kind != hwinfo.KindNvidia {
		t.Errorf("decoded kind = %v, want nvidia", decoded.Kind)
	}
}

func TestEncoderMatchesMarshal(t *testing.T) {
	descriptor := hwinfo.NewDescriptor("Nvidia", "GeForce RTX 4090", "GeForceRTX", 0x2684)

	var buffer bytes.Buffer
	if err := NewEncoder(&buffer).Encode(descriptor); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	direct, err := Marshal(descriptor)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(buffer.Bytes(), direct) {
		t.Errorf("encoder output differs from Marshal:\n%x\n%x", buffer.Bytes(), direct)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var descriptor hwinfo.Descriptor
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &descriptor); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func BenchmarkMarshal(b *testing.B) {
	descriptor := hwinfo.NewDescriptor("AMD", "Radeon RX 7900 XTX", "Navi", 0x744c)

	b.ReportAllocs()
	for b.Loop() {
		Marshal(descriptor)
	}
}
