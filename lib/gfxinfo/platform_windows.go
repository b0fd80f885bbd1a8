// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfxinfo

import (
	"log/slog"

	"github.com/bureau-foundation/gfxinfo/lib/config"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo/nvidia"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo/wmigpu"
)

func platformAdapters(cfg *config.Config, logger *slog.Logger) []hwinfo.Adapter {
	return []hwinfo.Adapter{
		nvidia.NewAdapter(nvidia.Options{
			LibraryPath: cfg.Nvidia.LibraryPath,
			Logger:      logger,
		}),
		wmigpu.NewAdapter(wmigpu.Options{Logger: logger}),
	}
}
