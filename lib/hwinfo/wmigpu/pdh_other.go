// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows || !(amd64 || arm64)

package wmigpu

import "errors"

func openCounters() (counterSource, error) {
	return nil, errors.New("PDH counters are not supported on this platform")
}
