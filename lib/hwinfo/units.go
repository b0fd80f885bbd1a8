// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import (
	"encoding/hex"
	"math"
	"slices"
)

// CelsiusToMillidegrees converts whole degrees Celsius to the
// canonical millidegree unit. NVML is the only source that reports
// whole degrees.
func CelsiusToMillidegrees(celsius uint32) uint32 {
	return celsius * 1000
}

// RoundCounter converts a formatted performance counter value to an
// integer, rounding half away from zero. Negative, NaN, and infinite
// values yield 0; values beyond uint64 saturate.
func RoundCounter(value float64) uint64 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	rounded := math.Round(value)
	if rounded >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(rounded)
}

// ClampPercent limits a utilization figure to 0-100.
func ClampPercent(value uint64) uint32 {
	if value > 100 {
		return 100
	}
	return uint32(value)
}

// ReversedHex renders a little-endian identifier as a big-endian hex
// string: the bytes are reversed, leading zero bytes are dropped (not
// padded), and each remaining byte becomes two lowercase hex digits.
// The IORegistry "vendor-id" blob 02 10 00 00 renders as "1002". An
// all-zero or empty input renders as "".
func ReversedHex(data []byte) string {
	reversed := slices.Clone(data)
	slices.Reverse(reversed)
	for len(reversed) > 0 && reversed[0] == 0 {
		reversed = reversed[1:]
	}
	return hex.EncodeToString(reversed)
}
