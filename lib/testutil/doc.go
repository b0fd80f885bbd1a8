// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for gfxinfo packages.
//
// [WriteFile], [Symlink], and [MkdirAll] build synthetic sysfs and
// devfs trees under t.TempDir() so adapter tests can exercise real
// directory walks and symlink resolution without hardware.
//
// [DiscardLogger] returns a logger that drops everything below Error,
// matching what adapters receive in production when no logger is
// configured.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no gfxinfo-internal dependencies.
package testutil
