// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfxinfo

import (
	"log/slog"

	"github.com/bureau-foundation/gfxinfo/lib/config"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo/amdgpu"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo/intel"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo/nvidia"
)

func platformAdapters(cfg *config.Config, logger *slog.Logger) []hwinfo.Adapter {
	return []hwinfo.Adapter{
		amdgpu.NewAdapter(amdgpu.Options{
			SysRoot: cfg.AMDGPU.SysRoot,
			DevRoot: cfg.AMDGPU.DevRoot,
			IDsPath: cfg.AMDGPU.IDsPath,
			Logger:  logger,
		}),
		nvidia.NewAdapter(nvidia.Options{
			LibraryPath: cfg.Nvidia.LibraryPath,
			Logger:      logger,
		}),
		intel.NewAdapter(),
	}
}
