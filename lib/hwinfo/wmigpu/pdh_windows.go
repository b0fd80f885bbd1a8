// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows && (amd64 || arm64)

package wmigpu

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	pdhDLL = windows.NewLazySystemDLL("pdh.dll")

	procOpenQuery              = pdhDLL.NewProc("PdhOpenQueryW")
	procAddEnglishCounter      = pdhDLL.NewProc("PdhAddEnglishCounterW")
	procCollectQueryData       = pdhDLL.NewProc("PdhCollectQueryData")
	procGetFormattedCounterArr = pdhDLL.NewProc("PdhGetFormattedCounterArrayW")
	procCloseQuery             = pdhDLL.NewProc("PdhCloseQuery")
)

const (
	pdhFmtDouble = 0x00000200

	pdhMoreData         = 0x800007D2
	pdhNoData           = 0x800007D5
	pdhCStatusValidData = 0x00000000
	pdhCStatusNewData   = 0x00000001
)

// pdhFmtCounterValueDouble mirrors PDH_FMT_COUNTERVALUE with the
// double member of its union. The union is 8-byte aligned on 64-bit
// targets, hence the padding.
type pdhFmtCounterValueDouble struct {
	CStatus     uint32
	_           uint32
	DoubleValue float64
}

// pdhFmtCounterValueItemDouble mirrors PDH_FMT_COUNTERVALUE_ITEM_W.
type pdhFmtCounterValueItemDouble struct {
	Name     *uint16
	FmtValue pdhFmtCounterValueDouble
}

// pdhQuery is an open PDH query holding both GPU counters.
type pdhQuery struct {
	handle      uintptr
	memory      uintptr
	utilization uintptr
}

type pdhStatus uint32

func (s pdhStatus) Error() string { return fmt.Sprintf("PDH status 0x%08X", uint32(s)) }

func openCounters() (counterSource, error) {
	if err := pdhDLL.Load(); err != nil {
		return nil, err
	}
	for _, proc := range []*windows.LazyProc{
		procOpenQuery, procAddEnglishCounter, procCollectQueryData,
		procGetFormattedCounterArr, procCloseQuery,
	} {
		if err := proc.Find(); err != nil {
			return nil, err
		}
	}

	query := &pdhQuery{}
	if status, _, _ := procOpenQuery.Call(0, 0, uintptr(unsafe.Pointer(&query.handle))); status != 0 {
		return nil, fmt.Errorf("PdhOpenQueryW: %w", pdhStatus(status))
	}

	var err error
	if query.memory, err = query.addCounter(dedicatedUsagePath); err != nil {
		query.Close()
		return nil, err
	}
	if query.utilization, err = query.addCounter(utilizationPath); err != nil {
		query.Close()
		return nil, err
	}

	// Utilization is a rate counter and needs two collections before
	// it has a value. Prime it here so the first read is meaningful.
	if status, _, _ := procCollectQueryData.Call(query.handle); status != 0 {
		query.Close()
		return nil, fmt.Errorf("PdhCollectQueryData: %w", pdhStatus(status))
	}
	return query, nil
}

func (q *pdhQuery) addCounter(path string) (uintptr, error) {
	pathPointer, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	var counter uintptr
	status, _, _ := procAddEnglishCounter.Call(
		q.handle,
		uintptr(unsafe.Pointer(pathPointer)),
		0,
		uintptr(unsafe.Pointer(&counter)),
	)
	if status != 0 {
		return 0, fmt.Errorf("PdhAddEnglishCounterW %s: %w", path, pdhStatus(status))
	}
	return counter, nil
}

func (q *pdhQuery) Collect() (Sample, error) {
	if status, _, _ := procCollectQueryData.Call(q.handle); status != 0 {
		return Sample{}, fmt.Errorf("PdhCollectQueryData: %w", pdhStatus(status))
	}
	memory, err := formattedArray(q.memory)
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", dedicatedUsagePath, err)
	}
	utilization, err := formattedArray(q.utilization)
	if err != nil {
		return Sample{}, fmt.Errorf("%s: %w", utilizationPath, err)
	}
	return Sample{DedicatedUsage: memory, Utilization: utilization}, nil
}

// formattedArray reads every instance of a wildcard counter as
// doubles. Instances whose status is not valid are skipped.
func formattedArray(counter uintptr) ([]float64, error) {
	var size, count uint32
	status, _, _ := procGetFormattedCounterArr.Call(
		counter,
		pdhFmtDouble,
		uintptr(unsafe.Pointer(&size)),
		uintptr(unsafe.Pointer(&count)),
		0,
	)
	switch uint32(status) {
	case pdhMoreData:
	case pdhCStatusValidData, pdhNoData:
		return nil, nil
	default:
		return nil, pdhStatus(status)
	}
	if size == 0 || count == 0 {
		return nil, nil
	}

	// The buffer holds count items followed by their instance names.
	// Allocating it as items keeps the item array correctly aligned.
	itemSize := uint32(unsafe.Sizeof(pdhFmtCounterValueItemDouble{}))
	buffer := make([]pdhFmtCounterValueItemDouble, (size+itemSize-1)/itemSize)
	status, _, _ = procGetFormattedCounterArr.Call(
		counter,
		pdhFmtDouble,
		uintptr(unsafe.Pointer(&size)),
		uintptr(unsafe.Pointer(&count)),
		uintptr(unsafe.Pointer(&buffer[0])),
	)
	if status != 0 {
		return nil, pdhStatus(status)
	}
	count = min(count, uint32(len(buffer)))

	values := make([]float64, 0, count)
	for _, item := range buffer[:count] {
		switch item.FmtValue.CStatus {
		case pdhCStatusValidData, pdhCStatusNewData:
			values = append(values, item.FmtValue.DoubleValue)
		}
	}
	return values, nil
}

func (q *pdhQuery) Close() error {
	if q.handle == 0 {
		return nil
	}
	status, _, _ := procCloseQuery.Call(q.handle)
	q.handle = 0
	if status != 0 {
		return fmt.Errorf("PdhCloseQuery: %w", pdhStatus(status))
	}
	return nil
}
