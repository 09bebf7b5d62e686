package source_test

import (
	"context"
	"sync"
	"testing"

	"github.com/go-tangra/go-tangra-hwscore/internal/source"
	"github.com/go-tangra/go-tangra-hwscore/internal/source/sourcetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageMonitorSample(t *testing.T) {
	fast := &sourcetest.Fast{
		Percent: 37.5,
		Mem:     source.MemoryStat{Total: 16 << 30, Used: 4 << 30, UsedPercent: 25},
	}
	m := source.NewUsageMonitor(fast)

	u, err := m.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 37.5, u.CPUPercent)
	assert.Equal(t, uint64(16<<30), u.MemoryTotal)
	assert.Equal(t, uint64(4<<30), u.MemoryUsed)
	assert.Equal(t, 25.0, u.MemoryPercent)
	assert.False(t, u.SampledAt.IsZero())
}

func TestUsageMonitorConcurrentSamples(t *testing.T) {
	fast := &sourcetest.Fast{Percent: 10}
	m := source.NewUsageMonitor(fast)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Sample(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, fast.Calls())
}

func TestUsageMonitorError(t *testing.T) {
	m := source.NewUsageMonitor(&sourcetest.Fast{Err: sourcetest.ErrUnreachable})

	_, err := m.Sample(context.Background())
	assert.ErrorIs(t, err, sourcetest.ErrUnreachable)
}
