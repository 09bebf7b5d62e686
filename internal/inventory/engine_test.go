package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/scoring"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
	"github.com/go-tangra/go-tangra-hwscore/internal/source/sourcetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workstation() *sourcetest.Env {
	return &sourcetest.Env{
		Fast: &sourcetest.Fast{
			CPUs:     []source.LogicalCPU{{Brand: "AMD Ryzen 9 7950X 16-Core Processor", Vendor: "AuthenticAMD", FrequencyMHz: 4501}},
			Physical: 16,
			Logical:  32,
		},
		WMI: &sourcetest.WMI{Records: map[string][]sourcetest.Record{
			"Win32_VideoController": {{"Name": "NVIDIA GeForce RTX 4080", "AdapterRAM": uint32(4293918720)}},
			"Win32_PhysicalMemory": {
				{"Capacity": uint64(16 << 30), "Speed": 3200},
				{"Capacity": uint64(16 << 30), "Speed": 3200},
			},
			"Win32_DiskDrive": {
				{"Model": "WD_BLACK SN850X NVMe 1000GB", "Size": uint64(1_073_741_824_000), "InterfaceType": "SCSI"},
			},
			"Win32_BaseBoard":      {{"Manufacturer": "Gigabyte Technology Co., Ltd.", "Product": "X670E AORUS MASTER"}},
			"Win32_DesktopMonitor": {{"Name": "Dell U2723QE"}},
			"Win32_SoundDevice":    {{"Name": "NVIDIA High Definition Audio"}},
		}},
		Registry: &sourcetest.Registry{Values: map[string]map[string]any{
			"0000": {
				source.DriverDescValue:   "NVIDIA GeForce RTX 4080",
				source.QwMemorySizeValue: uint64(16 << 30),
			},
		}},
	}
}

func newTestEngine(env *sourcetest.Env, opts ...Option) *Engine {
	e := NewEngine(collector.New(env.Factory()), opts...)
	e.hostname = func() (string, error) { return "bench-01", nil }
	return e
}

func TestSnapshot(t *testing.T) {
	env := workstation()

	snap, err := newTestEngine(env).Snapshot(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "bench-01", snap.Hostname)
	assert.False(t, snap.CollectedAt.IsZero())

	require.Len(t, snap.CPU, 1)
	assert.Equal(t, scoring.Result{Tier: scoring.Excellent, Score: 144}, snap.CPU[0].Result)

	require.Len(t, snap.GPU, 1)
	assert.Equal(t, scoring.Result{Tier: scoring.Excellent, Score: 128}, snap.GPU[0].Result)

	assert.Equal(t, uint64(32), snap.RAM.TotalGiB)
	assert.Equal(t, uint32(3200), snap.RAM.AvgSpeedMHz)
	assert.Equal(t, scoring.Excellent, snap.RAM.Tier)
	assert.Equal(t, uint32(112), snap.RAM.Score)

	require.Len(t, snap.Disks, 1)
	assert.True(t, snap.Disks[0].IsSSD)
	assert.True(t, snap.Disks[0].IsNVMe)
	assert.Equal(t, scoring.Result{Tier: scoring.Excellent, Score: 100}, snap.Disks[0].Result)

	require.Len(t, snap.Motherboard, 1)
	assert.Equal(t, "X670E", snap.Motherboard[0].Chipset)

	require.Len(t, snap.Monitors, 1)
	assert.Len(t, snap.Sound, 1)
	assert.NotNil(t, snap.Network)
	assert.NotNil(t, snap.Peripherals.Bluetooth)
}

func TestSnapshotUnitsOwnConnections(t *testing.T) {
	env := workstation()

	_, err := newTestEngine(env).Snapshot(context.Background())
	require.NoError(t, err)

	opened := env.Opened()
	// gpu, memory, disks, motherboard, system, peripherals; cpu stays on the fast source
	require.Len(t, opened, 6)
	for _, d := range opened {
		assert.GreaterOrEqual(t, d.InitCalls(), 1)
		assert.True(t, d.Closed())
	}
}

func TestSnapshotMonitorFailureTolerated(t *testing.T) {
	env := workstation()
	env.WMI.Errors = map[string]error{
		"Win32_DesktopMonitor": errors.New().New(errors.ErrQueryFailed),
		"Win32_PnPEntity":      errors.New().New(errors.ErrClassNotFound),
	}

	snap, err := newTestEngine(env).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Monitors)
	assert.NotNil(t, snap.Monitors)
	assert.Len(t, snap.Sound, 1)
	assert.Empty(t, snap.Peripherals.USB)
}

func TestSnapshotCriticalFailure(t *testing.T) {
	env := workstation()
	env.WMI.Errors = map[string]error{
		"Win32_VideoController": errors.New().New(errors.ErrClassNotFound),
	}

	snap, err := newTestEngine(env).Snapshot(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.True(t, errors.HasCode(err, errors.ErrSnapshotFailed))
	assert.True(t, errors.HasCode(err, errors.ErrNoSourceAvailable))
	assert.True(t, errors.HasCode(err, errors.ErrClassNotFound))

	var e errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, DomainGPU, e.GetData())
}

func TestSnapshotReportsFirstCriticalInFixedOrder(t *testing.T) {
	env := workstation()
	env.WMI.Errors = map[string]error{
		"Win32_DiskDrive":      errors.New().New(errors.ErrQueryFailed),
		"Win32_PhysicalMemory": errors.New().New(errors.ErrQueryFailed),
	}

	_, err := newTestEngine(env).Snapshot(context.Background())

	var e errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, DomainMemory, e.GetData())
}

func TestSnapshotTimeout(t *testing.T) {
	env := workstation()
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	env.WMI.Block = map[string]chan struct{}{"Win32_DiskDrive": block}

	start := time.Now()
	_, err := newTestEngine(env, WithTimeout(50*time.Millisecond)).Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrTimeout))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSnapshotBestEffortTimeout(t *testing.T) {
	env := workstation()
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	env.WMI.Block = map[string]chan struct{}{"Win32_PnPEntity": block}

	snap, err := newTestEngine(env, WithTimeout(50*time.Millisecond)).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Peripherals.USB)
	assert.Len(t, snap.Monitors, 1)
}

func TestSnapshotUnitPanic(t *testing.T) {
	env := workstation()
	env.WMI.Panics = map[string]string{"Win32_BaseBoard": "provider exploded"}

	_, err := newTestEngine(env).Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrUnitFailed))
	assert.Contains(t, err.Error(), "provider exploded")
}

func TestDomainAccessors(t *testing.T) {
	env := workstation()
	e := newTestEngine(env)
	ctx := context.Background()

	ram, err := e.RAM(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(112), ram.Score)

	v, err := e.Domain(ctx, DomainDisks)
	require.NoError(t, err)
	disks, ok := v.([]ScoredDisk)
	require.True(t, ok)
	assert.Len(t, disks, 1)

	_, err = e.Domain(ctx, "toaster")
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
}

func TestDomainAccessorFailsIndependently(t *testing.T) {
	env := workstation()
	env.WMI.Errors = map[string]error{"Win32_SoundDevice": errors.New().New(errors.ErrQueryFailed)}
	e := newTestEngine(env)

	_, err := e.Sound(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrQueryFailed))

	monitors, err := e.Monitors(context.Background())
	require.NoError(t, err)
	assert.Len(t, monitors, 1)
}

func TestRunUnitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runUnit(ctx, time.Minute, "cpu", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return 1, nil
	})
	assert.True(t, errors.HasCode(err, errors.ErrUnitFailed))
}
