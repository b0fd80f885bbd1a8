// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nvidia

import "log/slog"

// Options configures an Adapter.
type Options struct {
	// LibraryPath overrides the NVML shared object. Empty uses the
	// dynamic loader's search path for libnvidia-ml.so.1.
	LibraryPath string

	Logger *slog.Logger
}
