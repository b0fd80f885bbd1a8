// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package wmigpu

import "github.com/yusufpapurcu/wmi"

// win32VideoController receives the columns of controllerQuery. The
// wmi package fills fields by name and leaves NULL columns zero.
type win32VideoController struct {
	Name                 string
	VideoProcessor       string
	AdapterCompatibility string
	AdapterRAM           uint32
	PNPDeviceID          string
}

func queryControllers() ([]Controller, error) {
	var rows []win32VideoController
	if err := wmi.Query(controllerQuery, &rows); err != nil {
		return nil, err
	}
	controllers := make([]Controller, len(rows))
	for index, row := range rows {
		controllers[index] = Controller(row)
	}
	return controllers, nil
}
