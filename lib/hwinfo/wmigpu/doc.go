// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wmigpu resolves the active GPU on Windows through WMI
// (Win32_VideoController) and reads telemetry from the Performance
// Data Helper counters that Task Manager uses:
//
//	\GPU Adapter Memory(*)\Dedicated Usage
//	\GPU Engine(*)\Utilization Percentage
//
// The adapter logic is portable and tested everywhere. Only the WMI
// query and the PDH bindings are Windows-specific; other platforms get
// sources that report themselves unavailable.
package wmigpu
