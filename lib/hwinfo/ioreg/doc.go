// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ioreg resolves the active GPU on macOS from the I/O Kit
// registry. It runs ioreg(8) in archive mode against the
// IOAccelerator class and decodes the resulting property list:
//
//	ioreg -a -r -d 1 -c IOAccelerator
//
// Parsing is platform-independent so it can be tested with recorded
// output; only the default command assumes macOS.
package ioreg
