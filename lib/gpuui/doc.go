// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gpuui is a bubbletea viewer that shows a resolved GPU's
// identity and redraws its telemetry on a fixed interval. The model
// owns the polling: every tick reads one snapshot from the GPU, so
// the refresh cadence is decided here rather than by the GPU handle.
package gpuui
