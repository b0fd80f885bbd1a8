// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hwinfo

import "errors"

var (
	// ErrSourceUnavailable means the native facility behind an adapter
	// could not initialize: driver not loaded, library missing, service
	// connection refused, or the adapter is not built for this platform.
	ErrSourceUnavailable = errors.New("hwinfo: telemetry source unavailable")

	// ErrNotFound means the facility initialized but enumerated no
	// matching device.
	ErrNotFound = errors.New("hwinfo: no matching device")

	// ErrNoGPUFound is the only error the resolver returns outward. It
	// is returned when every configured adapter failed.
	ErrNoGPUFound = errors.New("hwinfo: no GPU found")
)
