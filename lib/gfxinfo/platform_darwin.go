// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfxinfo

import (
	"log/slog"

	"github.com/bureau-foundation/gfxinfo/lib/config"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo/ioreg"
)

func platformAdapters(cfg *config.Config, logger *slog.Logger) []hwinfo.Adapter {
	return []hwinfo.Adapter{
		ioreg.NewAdapter(ioreg.Options{
			Command: cfg.IORegistry.Command,
			Timeout: cfg.IORegistryTimeout(),
			Logger:  logger,
		}),
	}
}
