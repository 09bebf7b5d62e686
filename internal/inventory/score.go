package inventory

import (
	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/heuristic"
	"github.com/go-tangra/go-tangra-hwscore/internal/scoring"
)

func scoreCPUs(cpus []collector.CPUInfo) []ScoredCPU {
	out := make([]ScoredCPU, len(cpus))
	for i, c := range cpus {
		out[i] = ScoredCPU{Info: c, Result: scoring.CPU(c.Cores, c.MaxClockSpeedMHz)}
	}
	return out
}

func scoreGPUs(gpus []collector.GPUInfo) []ScoredGPU {
	out := make([]ScoredGPU, len(gpus))
	for i, g := range gpus {
		out[i] = ScoredGPU{Info: g, Result: scoring.GPU(g.VRAMBytes)}
	}
	return out
}

func scoreRAM(modules []collector.MemoryModule) ScoredRAM {
	sticks := make([]scoring.Stick, len(modules))
	for i, m := range modules {
		sticks[i] = scoring.Stick{CapacityBytes: m.CapacityBytes, SpeedMHz: m.SpeedMHz}
		if m.ConfiguredClockMHz != nil {
			sticks[i].ConfiguredClockMHz = *m.ConfiguredClockMHz
		}
	}
	return ScoredRAM{Modules: orEmpty(modules), RAMSummary: scoring.RAM(sticks)}
}

func scoreDisks(disks []collector.DiskInfo) []ScoredDisk {
	out := make([]ScoredDisk, len(disks))
	for i, d := range disks {
		ssd, nvme := heuristic.ClassifyMedia(d.Model, d.MediaType, d.InterfaceType)
		out[i] = ScoredDisk{Info: d, IsSSD: ssd, IsNVMe: nvme, Result: scoring.Disk(d.SizeBytes)}
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
