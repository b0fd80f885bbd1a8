// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// gfxinfo prints the identity and live telemetry of the machine's
// active GPU.
//
//	gfxinfo                       # same as "gfxinfo show"
//	gfxinfo show --format json    # one report as JSON
//	gfxinfo watch --interval 500ms
//	gfxinfo serve --listen :9835  # Prometheus exporter
//
// Configuration is optional: pass --config, or set GFXINFO_CONFIG to
// a YAML or JSONC file.
package main
