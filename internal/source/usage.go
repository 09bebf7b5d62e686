package source

import (
	"context"
	"sync"
	"time"
)

const usageSampleInterval = 200 * time.Millisecond

// Usage is one live utilization reading.
type Usage struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryTotal   uint64    `json:"memory_total_bytes"`
	MemoryUsed    uint64    `json:"memory_used_bytes"`
	MemoryPercent float64   `json:"memory_used_percent"`
	SampledAt     time.Time `json:"sampled_at"`
}

// UsageMonitor is the long-lived fast handle for repeated usage polling.
// Samples are serialized: only one refresh runs at a time.
type UsageMonitor struct {
	mu       sync.Mutex
	fast     Fast
	interval time.Duration
}

// NewUsageMonitor wraps fast for sequential polling.
func NewUsageMonitor(fast Fast) *UsageMonitor {
	return &UsageMonitor{fast: fast, interval: usageSampleInterval}
}

// Sample refreshes the counters and returns the current reading.
func (m *UsageMonitor) Sample(ctx context.Context) (Usage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pct, err := m.fast.CPUPercent(ctx, m.interval)
	if err != nil {
		return Usage{}, err
	}

	vm, err := m.fast.Memory(ctx)
	if err != nil {
		return Usage{}, err
	}

	return Usage{
		CPUPercent:    pct,
		MemoryTotal:   vm.Total,
		MemoryUsed:    vm.Used,
		MemoryPercent: vm.UsedPercent,
		SampledAt:     time.Now().UTC(),
	}, nil
}
