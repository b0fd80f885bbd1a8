// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(linux && cgo)

package nvidia

import (
	"fmt"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Adapter reports NVML as unavailable on builds without cgo or
// outside Linux.
type Adapter struct{}

func NewAdapter(Options) *Adapter { return &Adapter{} }

func (a *Adapter) Kind() hwinfo.Kind { return hwinfo.KindNvidia }

func (a *Adapter) Probe() (hwinfo.Session, error) {
	return nil, fmt.Errorf("nvidia: NVML support not compiled in: %w", hwinfo.ErrSourceUnavailable)
}
