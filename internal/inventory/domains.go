package inventory

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
)

// Domain names accepted by Domain.
const (
	DomainCPU         = "cpu"
	DomainGPU         = "gpu"
	DomainMemory      = "memory"
	DomainDisks       = "disks"
	DomainMotherboard = "motherboard"
	DomainMonitors    = "monitors"
	DomainNetwork     = "network"
	DomainSound       = "sound"
	DomainPeripherals = "peripherals"
)

// Domains lists every single-domain accessor name.
var Domains = []string{
	DomainCPU, DomainGPU, DomainMemory, DomainDisks, DomainMotherboard,
	DomainMonitors, DomainNetwork, DomainSound, DomainPeripherals,
}

// CPU probes and scores processors alone.
func (e *Engine) CPU(ctx context.Context) ([]ScoredCPU, error) {
	cpus, err := runUnit(ctx, e.timeout, DomainCPU, e.collector.CPU)
	if err != nil {
		return nil, err
	}
	return scoreCPUs(cpus), nil
}

// GPU probes and scores video controllers alone.
func (e *Engine) GPU(ctx context.Context) ([]ScoredGPU, error) {
	gpus, err := runUnit(ctx, e.timeout, DomainGPU, e.collector.GPU)
	if err != nil {
		return nil, err
	}
	return scoreGPUs(gpus), nil
}

// RAM probes memory modules and scores the aggregate.
func (e *Engine) RAM(ctx context.Context) (ScoredRAM, error) {
	modules, err := runUnit(ctx, e.timeout, DomainMemory, e.collector.Memory)
	if err != nil {
		return ScoredRAM{}, err
	}
	return scoreRAM(modules), nil
}

// Disks probes and scores physical disks alone.
func (e *Engine) Disks(ctx context.Context) ([]ScoredDisk, error) {
	disks, err := runUnit(ctx, e.timeout, DomainDisks, e.collector.Disks)
	if err != nil {
		return nil, err
	}
	return scoreDisks(disks), nil
}

// Motherboard probes the baseboard alone.
func (e *Engine) Motherboard(ctx context.Context) ([]collector.MotherboardInfo, error) {
	return runUnit(ctx, e.timeout, DomainMotherboard, e.collector.Motherboard)
}

// Monitors probes desktop monitors alone.
func (e *Engine) Monitors(ctx context.Context) ([]collector.MonitorInfo, error) {
	return runUnit(ctx, e.timeout, DomainMonitors, e.collector.Monitors)
}

// Network probes network adapters alone.
func (e *Engine) Network(ctx context.Context) ([]collector.NetworkInfo, error) {
	return runUnit(ctx, e.timeout, DomainNetwork, e.collector.Network)
}

// Sound probes audio devices alone.
func (e *Engine) Sound(ctx context.Context) ([]collector.SoundInfo, error) {
	return runUnit(ctx, e.timeout, DomainSound, e.collector.Sound)
}

// Peripherals probes the plug-and-play groups alone.
func (e *Engine) Peripherals(ctx context.Context) (collector.Peripherals, error) {
	return runUnit(ctx, e.timeout, DomainPeripherals, e.collector.Peripherals)
}

// Domain runs the named accessor. Unknown names yield ErrNotFound.
func (e *Engine) Domain(ctx context.Context, name string) (any, error) {
	switch name {
	case DomainCPU:
		return e.CPU(ctx)
	case DomainGPU:
		return e.GPU(ctx)
	case DomainMemory:
		return e.RAM(ctx)
	case DomainDisks:
		return e.Disks(ctx)
	case DomainMotherboard:
		return e.Motherboard(ctx)
	case DomainMonitors:
		return e.Monitors(ctx)
	case DomainNetwork:
		return e.Network(ctx)
	case DomainSound:
		return e.Sound(ctx)
	case DomainPeripherals:
		return e.Peripherals(ctx)
	}
	return nil, errors.New().WithData(errors.ErrNotFound, "domain "+name)
}
