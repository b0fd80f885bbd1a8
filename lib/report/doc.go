// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report turns a resolved GPU into a serializable [Report] and
// renders it as text, JSON, YAML, or CBOR for the gfxinfo CLI.
//
// A report carries the GPU's identity, one telemetry snapshot, the
// resolver trace, a few host facts, and a [Fingerprint]: a BLAKE3
// keyed hash of the descriptor's deterministic CBOR encoding. The
// fingerprint identifies the same GPU model across machines and runs
// without depending on telemetry or host details.
package report
