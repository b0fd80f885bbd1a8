// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmigpu

import "github.com/bureau-foundation/gfxinfo/lib/hwinfo"

const (
	dedicatedUsagePath = `\GPU Adapter Memory(*)\Dedicated Usage`
	utilizationPath    = `\GPU Engine(*)\Utilization Percentage`
)

// Sample is one collection of both counters, one value per instance.
// Instances are per adapter LUID for memory and per engine for
// utilization.
type Sample struct {
	DedicatedUsage []float64
	Utilization    []float64
}

// counterSource is an open PDH query over dedicatedUsagePath and
// utilizationPath.
type counterSource interface {
	Collect() (Sample, error)
	Close() error
}

// MaxCounter reduces per-instance counter values to the largest,
// rounded to an integer. The busiest engine stands for the GPU's load,
// and the adapter with the most dedicated memory in use is the one a
// single-GPU view cares about. An empty set yields 0.
func MaxCounter(values []float64) uint64 {
	var largest uint64
	for _, value := range values {
		if rounded := hwinfo.RoundCounter(value); rounded > largest {
			largest = rounded
		}
	}
	return largest
}
