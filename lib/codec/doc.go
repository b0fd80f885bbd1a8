// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// gfxinfo's reports.
//
// gfxinfo uses CBOR in two places: the `--format cbor` report output
// and the canonical form hashed into a report fingerprint. Both need
// the same bytes for the same logical data, so the encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// # Struct Tag Rules
//
// Report types carry `json` tags only. fxamacker/cbor v2 reads `json`
// tags when `cbor` tags are absent, so a single tag names the field in
// JSON and CBOR output alike. Never put both tags on one field.
package codec
