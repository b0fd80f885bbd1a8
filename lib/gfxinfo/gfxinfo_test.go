// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gfxinfo

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/bureau-foundation/gfxinfo/lib/config"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo/hwinfotest"
	"github.com/bureau-foundation/gfxinfo/lib/testutil"
)

var navi = hwinfo.NewDescriptor("AMD", "Test", "Navi", 0x1234)

func TestActiveGPUReturnsFirstSuccess(t *testing.T) {
	var calls []hwinfo.Kind
	session := hwinfotest.NewSession(navi, hwinfo.Snapshot{
		TotalVRAMBytes:          16 << 30,
		UsedVRAMBytes:           2 << 30,
		LoadPercent:             12,
		TemperatureMillidegrees: 48000,
	})
	unavailable := &hwinfotest.Adapter{
		AdapterKind: hwinfo.KindNvidia,
		Err:         fmt.Errorf("nvml: %w", hwinfo.ErrSourceUnavailable),
		CallLog:     &calls,
	}
	notFound := &hwinfotest.Adapter{
		AdapterKind: hwinfo.KindIntel,
		Err:         fmt.Errorf("none: %w", hwinfo.ErrNotFound),
		CallLog:     &calls,
	}
	winner := &hwinfotest.Adapter{AdapterKind: hwinfo.KindAMD, Session: session, CallLog: &calls}
	never := &hwinfotest.Adapter{AdapterKind: hwinfo.KindWMI, Session: hwinfotest.NewSession(navi, hwinfo.Snapshot{}), CallLog: &calls}

	var traced []hwinfo.Attempt
	gpu, err := ActiveGPU(
		WithAdapters(unavailable, notFound, winner, never),
		WithTrace(func(attempt hwinfo.Attempt) { traced = append(traced, attempt) }),
		WithLogger(testutil.DiscardLogger()),
	)
	if err != nil {
		t.Fatalf("ActiveGPU: %v", err)
	}
	defer gpu.Close()

	if gpu.Vendor() != "AMD" || gpu.Model() != "Test" || gpu.Family() != "Navi" || gpu.DeviceID() != 0x1234 {
		t.Errorf("identity = %+v, want %+v", gpu.Descriptor(), navi)
	}
	if gpu.Kind() != hwinfo.KindAMD {
		t.Errorf("Kind = %v, want amd", gpu.Kind())
	}
	if never.Probes() != 0 {
		t.Error("adapter after the winner was probed")
	}

	wantCalls := []hwinfo.Kind{hwinfo.KindNvidia, hwinfo.KindIntel, hwinfo.KindAMD}
	if !slices.Equal(calls, wantCalls) {
		t.Errorf("calls = %v, want %v", calls, wantCalls)
	}
	if len(traced) != 3 || traced[2].Outcome != hwinfo.OutcomeSuccess {
		t.Errorf("trace = %+v, want three attempts ending in success", traced)
	}
	if got := gpu.Attempts(); len(got) != 3 {
		t.Errorf("Attempts = %+v", got)
	}

	if gpu.TotalVRAMBytes() != 16<<30 || gpu.UsedVRAMBytes() != 2<<30 {
		t.Errorf("VRAM = %d/%d", gpu.UsedVRAMBytes(), gpu.TotalVRAMBytes())
	}
	if gpu.LoadPercent() != 12 || gpu.TemperatureMillidegrees() != 48000 {
		t.Errorf("load=%d temp=%d", gpu.LoadPercent(), gpu.TemperatureMillidegrees())
	}
}

func TestActiveGPUNoGPUFound(t *testing.T) {
	var calls []hwinfo.Kind
	adapters := []hwinfo.Adapter{
		&hwinfotest.Adapter{AdapterKind: hwinfo.KindAMD, Err: fmt.Errorf("driver: %w", hwinfo.ErrSourceUnavailable), CallLog: &calls},
		&hwinfotest.Adapter{AdapterKind: hwinfo.KindNvidia, Err: fmt.Errorf("count: %w", hwinfo.ErrNotFound), CallLog: &calls},
		&hwinfotest.Adapter{AdapterKind: hwinfo.KindIntel, Err: errors.New("unclassified"), CallLog: &calls},
	}

	var traced []hwinfo.Attempt
	gpu, err := ActiveGPU(
		WithAdapters(adapters...),
		WithTrace(func(attempt hwinfo.Attempt) { traced = append(traced, attempt) }),
	)
	if gpu != nil {
		t.Fatal("expected nil GPU")
	}
	if !errors.Is(err, hwinfo.ErrNoGPUFound) {
		t.Fatalf("error = %v, want ErrNoGPUFound", err)
	}

	wantCalls := []hwinfo.Kind{hwinfo.KindAMD, hwinfo.KindNvidia, hwinfo.KindIntel}
	if !slices.Equal(calls, wantCalls) {
		t.Errorf("calls = %v, want each adapter once in order %v", calls, wantCalls)
	}
	for _, adapter := range adapters {
		if probes := adapter.(*hwinfotest.Adapter).Probes(); probes != 1 {
			t.Errorf("%v probed %d times, want 1", adapter.Kind(), probes)
		}
	}
	wantOutcomes := []hwinfo.Outcome{hwinfo.OutcomeUnavailable, hwinfo.OutcomeNotFound, hwinfo.OutcomeUnavailable}
	for index, attempt := range traced {
		if attempt.Outcome != wantOutcomes[index] {
			t.Errorf("attempt %d outcome = %v, want %v", index, attempt.Outcome, wantOutcomes[index])
		}
	}
}

func TestActiveGPUEmptyChain(t *testing.T) {
	_, err := ActiveGPU(WithAdapters())
	if !errors.Is(err, hwinfo.ErrNoGPUFound) {
		t.Errorf("error = %v, want ErrNoGPUFound", err)
	}
}

func TestIdentityIsStable(t *testing.T) {
	session := hwinfotest.NewSession(navi, hwinfo.Snapshot{LoadPercent: 10})
	gpu, err := ActiveGPU(WithAdapters(&hwinfotest.Adapter{AdapterKind: hwinfo.KindAMD, Session: session}))
	if err != nil {
		t.Fatalf("ActiveGPU: %v", err)
	}
	defer gpu.Close()

	first := gpu.Descriptor()
	session.SetSnapshot(hwinfo.Snapshot{LoadPercent: 90})
	session.Identity = hwinfo.NewDescriptor("Other", "Changed", "X", 1)

	if gpu.Descriptor() != first || gpu.Model() != "Test" {
		t.Errorf("identity changed after resolution: %+v", gpu.Descriptor())
	}
	if gpu.LoadPercent() != 90 {
		t.Errorf("LoadPercent = %d, want fresh reading 90", gpu.LoadPercent())
	}
}

func TestSnapshotAndClose(t *testing.T) {
	want := hwinfo.Snapshot{TotalVRAMBytes: 8 << 30, UsedVRAMBytes: 1 << 30, LoadPercent: 55, TemperatureMillidegrees: 61500}
	session := hwinfotest.NewSession(navi, want)
	gpu, err := ActiveGPU(WithAdapters(&hwinfotest.Adapter{AdapterKind: hwinfo.KindAMD, Session: session}))
	if err != nil {
		t.Fatalf("ActiveGPU: %v", err)
	}

	if got := gpu.Snapshot(); got != want {
		t.Errorf("Snapshot = %+v, want %+v", got, want)
	}
	if err := gpu.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if session.Closes() != 1 {
		t.Errorf("session closed %d times, want 1", session.Closes())
	}
}

func TestConcurrentTelemetry(t *testing.T) {
	session := hwinfotest.NewSession(navi, hwinfo.Snapshot{LoadPercent: 33})
	gpu, err := ActiveGPU(WithAdapters(&hwinfotest.Adapter{AdapterKind: hwinfo.KindAMD, Session: session}))
	if err != nil {
		t.Fatalf("ActiveGPU: %v", err)
	}
	defer gpu.Close()

	var waitGroup sync.WaitGroup
	for range 8 {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for range 100 {
				gpu.Snapshot()
				gpu.Model()
			}
		}()
	}
	waitGroup.Wait()
}

func TestEnabledFiltersDisabledKinds(t *testing.T) {
	cfg := config.Default()
	cfg.Adapters.Disable = []string{"nvidia", "intel"}

	chain := []hwinfo.Adapter{
		&hwinfotest.Adapter{AdapterKind: hwinfo.KindAMD},
		&hwinfotest.Adapter{AdapterKind: hwinfo.KindNvidia},
		&hwinfotest.Adapter{AdapterKind: hwinfo.KindIntel},
	}
	kept := enabled(chain, cfg)
	if len(kept) != 1 || kept[0].Kind() != hwinfo.KindAMD {
		t.Errorf("kept = %v, want only amd", kinds(kept))
	}
	if len(chain) != 3 || chain[1].Kind() != hwinfo.KindNvidia {
		t.Error("enabled modified its input")
	}
}

func TestPlatformChainHonoursConfig(t *testing.T) {
	cfg := config.Default()
	for _, adapter := range platformAdapters(cfg, testutil.DiscardLogger()) {
		cfg.Adapters.Disable = append(cfg.Adapters.Disable, adapter.Kind().String())
	}

	_, err := ActiveGPU(WithConfig(cfg))
	if !errors.Is(err, hwinfo.ErrNoGPUFound) {
		t.Errorf("error = %v, want ErrNoGPUFound with every adapter disabled", err)
	}
}

func kinds(adapters []hwinfo.Adapter) []hwinfo.Kind {
	result := make([]hwinfo.Kind, len(adapters))
	for index, adapter := range adapters {
		result[index] = adapter.Kind()
	}
	return result
}
