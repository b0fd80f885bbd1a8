// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package intel reserves the Intel slot in the Linux resolver chain.
// No telemetry path is implemented yet: i915 and xe expose identity in
// sysfs, but VRAM, load, and temperature need the perf PMU and hwmon
// interfaces, which differ between the two drivers. Until then every
// probe reports the source as unavailable so resolution falls through
// to the next adapter.
package intel

import (
	"fmt"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Adapter is the Intel placeholder adapter.
type Adapter struct{}

func NewAdapter() *Adapter { return &Adapter{} }

func (a *Adapter) Kind() hwinfo.Kind { return hwinfo.KindIntel }

func (a *Adapter) Probe() (hwinfo.Session, error) {
	return nil, fmt.Errorf("intel: not implemented: %w", hwinfo.ErrSourceUnavailable)
}
