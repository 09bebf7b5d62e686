package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/heuristic"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32Processor struct {
	Name                          *string
	Manufacturer                  *string
	MaxClockSpeed                 *uint32
	NumberOfCores                 *uint32
	NumberOfLogicalProcessors     *uint32
	L2CacheSize                   *uint32
	L3CacheSize                   *uint32
	SocketDesignation             *string
	Description                   *string
	VirtualizationFirmwareEnabled *bool
}

type win32CacheMemory struct {
	Level        *uint16
	MaxCacheSize *uint32
}

var processorQuery = source.Query{
	Class: "Win32_Processor",
	Fields: []string{
		"Name", "Manufacturer", "MaxClockSpeed", "NumberOfCores", "NumberOfLogicalProcessors",
		"L2CacheSize", "L3CacheSize", "SocketDesignation", "Description", "VirtualizationFirmwareEnabled",
	},
}

var cacheQuery = source.Query{Class: "Win32_CacheMemory", Fields: []string{"Level", "MaxCacheSize"}}

// CPU reads processors from the fast source, falling back to the
// detailed source when the fast one reports nothing usable. A fast
// record without a physical core count is kept as a last resort, with
// cores taken from the logical count.
func (s *Session) CPU(ctx context.Context) ([]CPUInfo, error) {
	cpus, err := s.fastCPU(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("fast CPU source failed, trying detailed")
	}
	if len(cpus) > 0 && cpus[0].Cores > 0 {
		return cpus, nil
	}

	detailed, derr := s.detailedCPU()
	if derr == nil {
		return detailed, nil
	}
	if len(cpus) == 0 {
		return nil, derr
	}

	logger.Debug().Err(derr).Msg("detailed CPU source failed, using logical count for cores")
	for i := range cpus {
		cpus[i].Cores = cpus[i].LogicalProcessors
	}
	return cpus, nil
}

// fastCPU summarizes the logical processors into one package record.
// Cores is zero when the physical count is unknown.
func (s *Session) fastCPU(ctx context.Context) ([]CPUInfo, error) {
	fast := s.fastSource()

	logical, err := fast.LogicalCPUs(ctx)
	if err != nil || len(logical) == 0 {
		return nil, err
	}

	threads, err := fast.LogicalCores(ctx)
	if err != nil || threads <= 0 {
		threads = len(logical)
	}

	physical, err := fast.PhysicalCores(ctx)
	if err != nil || physical < 0 {
		physical = 0
	}

	first := logical[0]
	return []CPUInfo{{
		Name:              first.Brand,
		Manufacturer:      first.Vendor,
		MaxClockSpeedMHz:  first.FrequencyMHz,
		Cores:             uint32(physical),
		LogicalProcessors: uint32(threads),
		Source:            SourceFast,
	}}, err
}

func (s *Session) detailedCPU() ([]CPUInfo, error) {
	var procs []win32Processor
	if err := s.query(processorQuery, &procs); err != nil {
		return nil, errors.New().Wrap(errors.ErrNoSourceAvailable, err).WithData("cpu")
	}
	if len(procs) == 0 {
		return nil, errors.New().WithData(errors.ErrNoSourceAvailable, "cpu: no processors reported")
	}

	result := make([]CPUInfo, len(procs))
	for i, p := range procs {
		result[i] = CPUInfo{
			Name:                  stringOr(p.Name, ""),
			Manufacturer:          stringOr(p.Manufacturer, ""),
			MaxClockSpeedMHz:      valueOr(p.MaxClockSpeed, 0),
			Cores:                 valueOr(p.NumberOfCores, 0),
			LogicalProcessors:     valueOr(p.NumberOfLogicalProcessors, 0),
			L2CacheKB:             p.L2CacheSize,
			L3CacheKB:             p.L3CacheSize,
			SocketDesignation:     trimmed(p.SocketDesignation),
			Description:           trimmed(p.Description),
			VirtualizationEnabled: p.VirtualizationFirmwareEnabled,
			Source:                SourceDetailed,
		}
	}

	s.patchCaches(result)
	return result, nil
}

// patchCaches fills zero or absent cache sizes from Win32_CacheMemory.
// The cache list is best effort.
func (s *Session) patchCaches(cpus []CPUInfo) {
	needed := false
	for _, c := range cpus {
		if c.L2CacheKB == nil || c.L3CacheKB == nil || *c.L3CacheKB == 0 {
			needed = true
			break
		}
	}
	if !needed {
		return
	}

	var caches []win32CacheMemory
	if err := s.query(cacheQuery, &caches); err != nil {
		logger.Debug().Err(err).Msg("cache memory query failed")
		return
	}

	sizes := make(heuristic.CacheSizesKB, 0, len(caches))
	for _, c := range caches {
		if c.MaxCacheSize != nil {
			sizes = append(sizes, *c.MaxCacheSize)
		}
	}

	for i := range cpus {
		cpus[i].L2CacheKB, cpus[i].L3CacheKB = heuristic.AssignCaches(cpus[i].L2CacheKB, cpus[i].L3CacheKB, sizes)
	}
}
