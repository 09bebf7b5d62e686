package source

import (
	"context"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// LogicalCPU is what the fast source knows about one logical processor.
type LogicalCPU struct {
	Brand        string
	Vendor       string
	FrequencyMHz uint32
}

// MemoryStat is the aggregate memory counter set.
type MemoryStat struct {
	Total       uint64
	Used        uint64
	UsedPercent float64
}

// Fast is the lightweight system-statistics source.
type Fast interface {
	LogicalCPUs(ctx context.Context) ([]LogicalCPU, error)
	PhysicalCores(ctx context.Context) (int, error)
	LogicalCores(ctx context.Context) (int, error)
	Memory(ctx context.Context) (MemoryStat, error)
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
}

type gopsutilFast struct{}

// NewFast returns a Fast backed by gopsutil.
func NewFast() Fast {
	return gopsutilFast{}
}

func (gopsutilFast) LogicalCPUs(ctx context.Context) ([]LogicalCPU, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrQueryFailed, err)
	}

	result := make([]LogicalCPU, len(infos))
	for i, info := range infos {
		result[i] = LogicalCPU{
			Brand:        info.ModelName,
			Vendor:       info.VendorID,
			FrequencyMHz: uint32(info.Mhz),
		}
	}
	return result, nil
}

func (gopsutilFast) PhysicalCores(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrQueryFailed, err)
	}
	return n, nil
}

func (gopsutilFast) LogicalCores(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrQueryFailed, err)
	}
	return n, nil
}

func (gopsutilFast) Memory(ctx context.Context) (MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStat{}, errors.New().Wrap(errors.ErrQueryFailed, err)
	}
	return MemoryStat{Total: vm.Total, Used: vm.Used, UsedPercent: vm.UsedPercent}, nil
}

func (gopsutilFast) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrQueryFailed, err)
	}
	if len(pcts) == 0 {
		return 0, nil
	}
	return pcts[0], nil
}
