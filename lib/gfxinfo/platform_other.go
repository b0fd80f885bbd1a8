// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !windows && !darwin

package gfxinfo

import (
	"log/slog"

	"github.com/bureau-foundation/gfxinfo/lib/config"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// No adapters exist for this platform, so ActiveGPU always reports
// hwinfo.ErrNoGPUFound.
func platformAdapters(*config.Config, *slog.Logger) []hwinfo.Adapter {
	return nil
}
