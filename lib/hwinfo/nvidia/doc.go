// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nvidia resolves and monitors NVIDIA GPUs through the NVIDIA
// Management Library (libnvidia-ml.so), loaded at runtime by
// github.com/NVIDIA/go-nvml. The library ships with the proprietary
// driver; systems running nouveau or no driver at all report the
// source as unavailable.
//
// NVML access needs cgo and Linux. Other builds compile a stub adapter
// whose probe always reports the source as unavailable, so resolver
// chains that list Nvidia work unchanged everywhere.
package nvidia
