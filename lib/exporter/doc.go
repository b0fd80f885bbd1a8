// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package exporter publishes a resolved GPU's telemetry as Prometheus
// gauges. Values are not cached: every scrape reads one snapshot from
// the GPU, so the exporter reports whatever the native source says at
// scrape time.
//
// Metrics are registered on a private registry rather than the
// process-global default one.
package exporter
