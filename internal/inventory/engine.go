// Package inventory assembles a scored hardware snapshot by running the
// domain probes concurrently.
//
// Every unit runs on its own goroutine with its own adapter session and
// a deadline. CPU, GPU, memory, disk and motherboard are critical: any
// failure among them fails the snapshot. Monitors, network, sound,
// system identity and peripherals are best effort and degrade to empty
// values. Nothing is cached between calls.
package inventory

import (
	"context"
	"os"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each unit when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Engine runs snapshots and single-domain accessors.
type Engine struct {
	collector *collector.Collector
	timeout   time.Duration
	hostname  func() (string, error)
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-unit deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine returns an Engine probing through c.
func NewEngine(c *collector.Collector, opts ...Option) *Engine {
	e := &Engine{
		collector: c,
		timeout:   DefaultTimeout,
		hostname:  os.Hostname,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type systemUnit struct {
	System   BestEffort[collector.SystemInfo]
	Monitors BestEffort[[]collector.MonitorInfo]
	Network  BestEffort[[]collector.NetworkInfo]
	Sound    BestEffort[[]collector.SoundInfo]
}

// probeSystem reads the small best-effort domains over one session.
func (e *Engine) probeSystem(ctx context.Context) (systemUnit, error) {
	s := e.collector.Open()
	defer s.Close()

	var u systemUnit
	u.Sound = settle(s.Sound(ctx))
	u.Monitors = settle(s.Monitors(ctx))
	u.Network = settle(s.Network(ctx))
	u.System = settle(s.System(ctx))
	return u, nil
}

// Snapshot collects, joins and scores every domain.
func (e *Engine) Snapshot(ctx context.Context) (*FullHardwareInfo, error) {
	start := e.now()

	var (
		cpu    Critical[[]collector.CPUInfo]
		gpu    Critical[[]collector.GPUInfo]
		memory Critical[[]collector.MemoryModule]
		disk   Critical[[]collector.DiskInfo]
		board  Critical[[]collector.MotherboardInfo]
		sys    BestEffort[systemUnit]
		periph BestEffort[collector.Peripherals]
	)

	var g errgroup.Group
	g.Go(func() error {
		cpu.Value, cpu.Err = runUnit(ctx, e.timeout, DomainCPU, e.collector.CPU)
		return cpu.Err
	})
	g.Go(func() error {
		gpu.Value, gpu.Err = runUnit(ctx, e.timeout, DomainGPU, e.collector.GPU)
		return gpu.Err
	})
	g.Go(func() error {
		memory.Value, memory.Err = runUnit(ctx, e.timeout, DomainMemory, e.collector.Memory)
		return memory.Err
	})
	g.Go(func() error {
		disk.Value, disk.Err = runUnit(ctx, e.timeout, DomainDisks, e.collector.Disks)
		return disk.Err
	})
	g.Go(func() error {
		board.Value, board.Err = runUnit(ctx, e.timeout, DomainMotherboard, e.collector.Motherboard)
		return board.Err
	})
	g.Go(func() error {
		sys = settle(runUnit(ctx, e.timeout, "system", e.probeSystem))
		return nil
	})
	g.Go(func() error {
		periph = settle(runUnit(ctx, e.timeout, DomainPeripherals, e.collector.Peripherals))
		return nil
	})

	if err := g.Wait(); err != nil {
		criticals := []struct {
			domain string
			err    error
		}{
			{DomainCPU, cpu.Err},
			{DomainGPU, gpu.Err},
			{DomainMemory, memory.Err},
			{DomainDisks, disk.Err},
			{DomainMotherboard, board.Err},
		}
		for _, c := range criticals {
			if c.err != nil {
				logger.Error().Str("domain", c.domain).Err(c.err).Msg("critical probe failed")
				return nil, errors.New().Wrap(errors.ErrSnapshotFailed, c.err).WithData(c.domain)
			}
		}
		return nil, errors.New().Wrap(errors.ErrSnapshotFailed, err)
	}

	if sys.Err != nil {
		warnBestEffort("system", sys.Err)
	}
	warnBestEffort(DomainMonitors, sys.Value.Monitors.Err)
	warnBestEffort(DomainNetwork, sys.Value.Network.Err)
	warnBestEffort(DomainSound, sys.Value.Sound.Err)
	warnBestEffort("identity", sys.Value.System.Err)
	warnBestEffort(DomainPeripherals, periph.Err)

	hostname, err := e.hostname()
	if err != nil {
		logger.Warn().Err(err).Msg("hostname lookup failed")
	}

	snap := &FullHardwareInfo{
		ID:          uuid.NewString(),
		Hostname:    hostname,
		CollectedAt: start.UTC(),
		System:      sys.Value.System.Value,
		Motherboard: orEmpty(board.Value),
		CPU:         scoreCPUs(cpu.Value),
		GPU:         scoreGPUs(gpu.Value),
		RAM:         scoreRAM(memory.Value),
		Disks:       scoreDisks(disk.Value),
		Monitors:    orEmpty(sys.Value.Monitors.Value),
		Network:     orEmpty(sys.Value.Network.Value),
		Sound:       orEmpty(sys.Value.Sound.Value),
		Peripherals: collector.Peripherals{
			USB:       orEmpty(periph.Value.USB),
			Cameras:   orEmpty(periph.Value.Cameras),
			Bluetooth: orEmpty(periph.Value.Bluetooth),
		},
	}
	snap.DurationMS = e.now().Sub(start).Milliseconds()

	logger.Info().
		Str("id", snap.ID).
		Int64("duration_ms", snap.DurationMS).
		Int("cpus", len(snap.CPU)).
		Int("gpus", len(snap.GPU)).
		Int("disks", len(snap.Disks)).
		Msg("hardware snapshot collected")

	return snap, nil
}

func warnBestEffort(domain string, err error) {
	if err == nil {
		return
	}
	logger.Warn().Str("domain", domain).Err(err).Msg("best-effort probe failed, using empty result")
}
