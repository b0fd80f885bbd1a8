// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hwinfotest provides scripted adapters and sessions for
// testing code that consumes hwinfo without real GPUs.
package hwinfotest

import (
	"sync"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Adapter is an hwinfo.Adapter whose probe result is fixed. It counts
// probes and appends its kind to a shared call log so tests can assert
// resolution order.
type Adapter struct {
	AdapterKind hwinfo.Kind

	// Session is returned when Err is nil.
	Session *Session

	// Err is returned by Probe when non-nil.
	Err error

	// CallLog, when set, receives AdapterKind on every probe.
	CallLog *[]hwinfo.Kind

	mu     sync.Mutex
	probes int
}

func (a *Adapter) Kind() hwinfo.Kind { return a.AdapterKind }

func (a *Adapter) Probe() (hwinfo.Session, error) {
	a.mu.Lock()
	a.probes++
	if a.CallLog != nil {
		*a.CallLog = append(*a.CallLog, a.AdapterKind)
	}
	a.mu.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}
	if a.Session == nil {
		return nil, nil
	}
	return a.Session, nil
}

// Probes returns how many times Probe was called.
func (a *Adapter) Probes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.probes
}

// Session is an hwinfo.Session backed by fixed values. Telemetry can
// be changed between reads with SetSnapshot.
type Session struct {
	Identity hwinfo.Descriptor

	mu       sync.Mutex
	snapshot hwinfo.Snapshot
	closes   int
}

// NewSession returns a session reporting identity and snapshot.
func NewSession(identity hwinfo.Descriptor, snapshot hwinfo.Snapshot) *Session {
	return &Session{Identity: identity, snapshot: snapshot}
}

// SetSnapshot replaces the telemetry subsequent reads return.
func (s *Session) SetSnapshot(snapshot hwinfo.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

func (s *Session) Descriptor() hwinfo.Descriptor { return s.Identity }

func (s *Session) VRAM() (total, used uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.TotalVRAMBytes, s.snapshot.UsedVRAMBytes
}

func (s *Session) LoadPercent() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.LoadPercent
}

func (s *Session) TemperatureMillidegrees() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.TemperatureMillidegrees
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

// Closes returns how many times Close was called.
func (s *Session) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}
