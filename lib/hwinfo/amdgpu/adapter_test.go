// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package amdgpu

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/testutil"
)

// fakeDevice scripts the driver surface. Unset errors mean success.
type fakeDevice struct {
	info      deviceInfo
	infoErr   error
	memory    memoryInfo
	memoryErr error
	sensors   map[uint32]uint32

	mu     sync.Mutex
	closed int
}

func (f *fakeDevice) deviceInfo() (deviceInfo, error) { return f.info, f.infoErr }
func (f *fakeDevice) memoryInfo() (memoryInfo, error) { return f.memory, f.memoryErr }

func (f *fakeDevice) sensor(sensorType uint32) (uint32, error) {
	value, ok := f.sensors[sensorType]
	if !ok {
		return 0, errors.New("EINVAL")
	}
	return value, nil
}

func (f *fakeDevice) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// createSyntheticAMDGPU builds /sys/bus/pci/drivers/amdgpu/<slot> as a
// symlink into /sys/devices, with a drm/renderD* entry and VRAM files,
// the way the kernel lays it out.
func createSyntheticAMDGPU(t *testing.T, root, pciSlot, renderNode string) {
	t.Helper()

	deviceDir := filepath.Join("sys/devices/pci0000:00/0000:00:01.1", pciSlot)
	testutil.WriteFile(t, root, filepath.Join(deviceDir, "uevent"),
		"DRIVER=amdgpu\nPCI_CLASS=30000\nPCI_ID=1002:744C\nPCI_SUBSYS_ID=1EAE:7901\nPCI_SLOT_NAME="+pciSlot+"\n")
	testutil.WriteFile(t, root, filepath.Join(deviceDir, "mem_info_vram_total"), "25753026560\n")
	testutil.WriteFile(t, root, filepath.Join(deviceDir, "mem_info_vram_used"), "1073741824\n")
	testutil.MkdirAll(t, root, filepath.Join(deviceDir, "drm", "card1"))
	testutil.MkdirAll(t, root, filepath.Join(deviceDir, "drm", renderNode))

	testutil.MkdirAll(t, root, "sys/bus/pci/drivers/amdgpu")
	testutil.WriteFile(t, root, "sys/bus/pci/drivers/amdgpu/bind", "")
	testutil.WriteFile(t, root, "sys/bus/pci/drivers/amdgpu/new_id", "")
	testutil.Symlink(t, root, filepath.Join("sys/bus/pci/drivers/amdgpu", pciSlot),
		filepath.Join(root, deviceDir))
}

func newTestAdapter(t *testing.T, root string, fake *fakeDevice) (*Adapter, *[]string) {
	t.Helper()
	var opened []string
	adapter := NewAdapter(Options{
		SysRoot: filepath.Join(root, "sys"),
		DevRoot: filepath.Join(root, "dev"),
		IDsPath: filepath.Join(root, "amdgpu.ids"),
		Logger:  testutil.DiscardLogger(),
	})
	adapter.open = func(path string) (device, error) {
		opened = append(opened, path)
		if fake == nil {
			return nil, os.ErrPermission
		}
		return fake, nil
	}
	return adapter, &opened
}

func TestProbeResolvesIdentity(t *testing.T) {
	root := t.TempDir()
	createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")
	testutil.WriteFile(t, root, "amdgpu.ids", "1.0.0\n744C,\tC8,\tAMD Radeon RX 7900 XTX\n")

	fake := &fakeDevice{info: deviceInfo{DeviceID: 0x744C, PCIRev: 0xC8, Family: FamilyGC11_0_0}}
	adapter, opened := newTestAdapter(t, root, fake)

	session, err := adapter.Probe()
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	defer session.Close()

	want := hwinfo.Descriptor{Vendor: "AMD", Model: "AMD Radeon RX 7900 XTX", Family: "GC 11.0.0", DeviceID: 0x744C}
	if got := session.Descriptor(); got != want {
		t.Errorf("Descriptor = %+v, want %+v", got, want)
	}
	if len(*opened) != 1 || (*opened)[0] != filepath.Join(root, "dev/dri/renderD128") {
		t.Errorf("opened = %v, want [%s]", *opened, filepath.Join(root, "dev/dri/renderD128"))
	}
	if adapter.Kind() != hwinfo.KindAMD {
		t.Errorf("Kind = %v, want amd", adapter.Kind())
	}
}

func TestProbeSelectsFirstBoundDevice(t *testing.T) {
	root := t.TempDir()
	createSyntheticAMDGPU(t, root, "0000:c3:00.0", "renderD129")
	createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")

	fake := &fakeDevice{info: deviceInfo{DeviceID: 0x744C, Family: FamilyNV}}
	adapter, opened := newTestAdapter(t, root, fake)

	session, err := adapter.Probe()
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	defer session.Close()

	if (*opened)[0] != filepath.Join(root, "dev/dri/renderD128") {
		t.Errorf("opened %s, want the render node of 0000:03:00.0", (*opened)[0])
	}
	got := session.Descriptor()
	if got.Model != DefaultModelName {
		t.Errorf("Model = %q, want %q without a name table", got.Model, DefaultModelName)
	}
	if got.Family != "Navi" {
		t.Errorf("Family = %q, want Navi", got.Family)
	}
}

func TestProbeFailures(t *testing.T) {
	t.Run("driver not loaded", func(t *testing.T) {
		root := t.TempDir()
		adapter, _ := newTestAdapter(t, root, &fakeDevice{})
		_, err := adapter.Probe()
		if !errors.Is(err, hwinfo.ErrSourceUnavailable) {
			t.Errorf("error = %v, want ErrSourceUnavailable", err)
		}
	})

	t.Run("no bound devices", func(t *testing.T) {
		root := t.TempDir()
		testutil.WriteFile(t, root, "sys/bus/pci/drivers/amdgpu/bind", "")
		testutil.WriteFile(t, root, "sys/bus/pci/drivers/amdgpu/uevent", "")
		adapter, _ := newTestAdapter(t, root, &fakeDevice{})
		_, err := adapter.Probe()
		if !errors.Is(err, hwinfo.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("no render node", func(t *testing.T) {
		root := t.TempDir()
		createSyntheticAMDGPU(t, root, "0000:03:00.0", "controlD64")
		adapter, opened := newTestAdapter(t, root, &fakeDevice{})
		_, err := adapter.Probe()
		if !errors.Is(err, hwinfo.ErrSourceUnavailable) {
			t.Errorf("error = %v, want ErrSourceUnavailable", err)
		}
		if len(*opened) != 0 {
			t.Errorf("opened %v without a render node", *opened)
		}
	})

	t.Run("open denied", func(t *testing.T) {
		root := t.TempDir()
		createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")
		adapter, _ := newTestAdapter(t, root, nil)
		_, err := adapter.Probe()
		if !errors.Is(err, hwinfo.ErrSourceUnavailable) {
			t.Errorf("error = %v, want ErrSourceUnavailable", err)
		}
	})

	t.Run("device info fails and releases node", func(t *testing.T) {
		root := t.TempDir()
		createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")
		fake := &fakeDevice{infoErr: errors.New("ENOTTY")}
		adapter, _ := newTestAdapter(t, root, fake)
		_, err := adapter.Probe()
		if !errors.Is(err, hwinfo.ErrSourceUnavailable) {
			t.Errorf("error = %v, want ErrSourceUnavailable", err)
		}
		if fake.closed != 1 {
			t.Errorf("render node closed %d times, want 1", fake.closed)
		}
	})
}

// TestProbeRealIoctlOnRegularFile drives the real ioctl path against a
// regular file, which the kernel rejects with ENOTTY. This checks that
// the failure is classified and the descriptor is closed without
// needing an AMD GPU.
func TestProbeRealIoctlOnRegularFile(t *testing.T) {
	root := t.TempDir()
	createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")
	testutil.WriteFile(t, root, "dev/dri/renderD128", "")

	adapter := NewAdapter(Options{
		SysRoot: filepath.Join(root, "sys"),
		DevRoot: filepath.Join(root, "dev"),
		Logger:  testutil.DiscardLogger(),
	})
	_, err := adapter.Probe()
	if !errors.Is(err, hwinfo.ErrSourceUnavailable) {
		t.Fatalf("error = %v, want ErrSourceUnavailable", err)
	}
}

func TestSessionTelemetry(t *testing.T) {
	root := t.TempDir()
	createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")

	fake := &fakeDevice{
		info:   deviceInfo{DeviceID: 0x744C, Family: FamilyGC11_0_0},
		memory: memoryInfo{VRAMTotal: 25753026560, VRAMUsed: 2147483648},
		sensors: map[uint32]uint32{
			SensorGPULoad: 37,
			SensorGPUTemp: 52000,
		},
	}
	adapter, _ := newTestAdapter(t, root, fake)
	session, err := adapter.Probe()
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}

	snapshot := hwinfo.ReadSnapshot(session)
	want := hwinfo.Snapshot{
		TotalVRAMBytes:          25753026560,
		UsedVRAMBytes:           2147483648,
		LoadPercent:             37,
		TemperatureMillidegrees: 52000,
	}
	if snapshot != want {
		t.Errorf("snapshot = %+v, want %+v", snapshot, want)
	}

	if err := session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if fake.closed != 1 {
		t.Errorf("device closed %d times, want 1", fake.closed)
	}
	if got := hwinfo.ReadSnapshot(session); got != (hwinfo.Snapshot{}) {
		t.Errorf("snapshot after Close = %+v, want zero", got)
	}
}

func TestSessionTelemetryFaultTolerance(t *testing.T) {
	root := t.TempDir()
	createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")

	// Memory ioctl and every sensor fail: VRAM falls back to sysfs and
	// the sensors read as zero without failing the snapshot.
	fake := &fakeDevice{
		info:      deviceInfo{DeviceID: 0x744C},
		memoryErr: errors.New("EINVAL"),
	}
	adapter, _ := newTestAdapter(t, root, fake)
	session, err := adapter.Probe()
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	defer session.Close()

	snapshot := hwinfo.ReadSnapshot(session)
	want := hwinfo.Snapshot{TotalVRAMBytes: 25753026560, UsedVRAMBytes: 1073741824}
	if snapshot != want {
		t.Errorf("snapshot = %+v, want %+v", snapshot, want)
	}
}

func TestSessionClampsLoad(t *testing.T) {
	root := t.TempDir()
	createSyntheticAMDGPU(t, root, "0000:03:00.0", "renderD128")
	fake := &fakeDevice{sensors: map[uint32]uint32{SensorGPULoad: 140}}
	adapter, _ := newTestAdapter(t, root, fake)
	session, err := adapter.Probe()
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	defer session.Close()

	if got := session.LoadPercent(); got != 100 {
		t.Errorf("LoadPercent = %d, want 100", got)
	}
}

// TestLiveProbe runs against real hardware. Skipped when no amdgpu
// device is present or its render node is not accessible.
func TestLiveProbe(t *testing.T) {
	adapter := NewAdapter(Options{Logger: testutil.DiscardLogger()})
	session, err := adapter.Probe()
	if err != nil {
		t.Skipf("skipping: %v", err)
	}
	defer session.Close()

	descriptor := session.Descriptor()
	if descriptor.Vendor != "AMD" {
		t.Errorf("Vendor = %q, want AMD", descriptor.Vendor)
	}
	if descriptor.DeviceID == 0 {
		t.Error("DeviceID = 0 from DEV_INFO")
	}
	snapshot := hwinfo.ReadSnapshot(session)
	if snapshot.TemperatureMillidegrees > 0 && snapshot.TemperatureMillidegrees < 1000 {
		t.Errorf("TemperatureMillidegrees = %d, implausibly low", snapshot.TemperatureMillidegrees)
	}
	t.Logf("%+v vram=%d/%d MB load=%d%% temp=%d mC",
		descriptor,
		snapshot.UsedVRAMBytes/(1024*1024), snapshot.TotalVRAMBytes/(1024*1024),
		snapshot.LoadPercent, snapshot.TemperatureMillidegrees)
}
