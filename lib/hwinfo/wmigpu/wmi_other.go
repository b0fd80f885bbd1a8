// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package wmigpu

import "errors"

func queryControllers() ([]Controller, error) {
	return nil, errors.New("WMI requires Windows")
}
