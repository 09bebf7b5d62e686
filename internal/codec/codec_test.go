package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/encoding"
	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/scoring"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func sampleSnapshot() *inventory.FullHardwareInfo {
	vram := uint64(16 << 30)
	size := uint64(2 << 40)
	speed := uint64(2_500_000_000)
	eth := "Ethernet"

	return &inventory.FullHardwareInfo{
		ID:          "3f1c7a52-0d7e-4c55-9b9e-6a4f3c1d2e10",
		Hostname:    "bench-01",
		CollectedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		DurationMS:  1250,
		Motherboard: []collector.MotherboardInfo{{
			Manufacturer: "ASUSTeK COMPUTER INC.",
			Product:      "ROG STRIX B650E-F GAMING WIFI",
			Chipset:      "B650E",
			GPUSlots:     collector.SlotInfo{Total: 2, Used: 1},
			RAMSlots:     collector.SlotInfo{Total: 4, Used: 2},
		}},
		CPU: []inventory.ScoredCPU{{
			Info:   collector.CPUInfo{Name: "AMD Ryzen 9 7950X", Cores: 16, LogicalProcessors: 32, MaxClockSpeedMHz: 4501},
			Result: scoring.Result{Tier: scoring.Excellent, Score: 144},
		}},
		GPU: []inventory.ScoredGPU{{
			Info:   collector.GPUInfo{Name: "NVIDIA GeForce RTX 4080", VRAMBytes: &vram, VRAMSource: "registry"},
			Result: scoring.Result{Tier: scoring.Excellent, Score: 128},
		}},
		RAM: inventory.ScoredRAM{
			Modules: []collector.MemoryModule{{CapacityBytes: 16 << 30}, {CapacityBytes: 16 << 30}},
			RAMSummary: scoring.RAMSummary{
				TotalBytes: 32 << 30, TotalGiB: 32, AvgSpeedMHz: 3200,
				Result: scoring.Result{Tier: scoring.Excellent, Score: 112},
			},
		},
		Disks: []inventory.ScoredDisk{{
			Info:   collector.DiskInfo{Model: "Samsung SSD 990 PRO 2TB", SizeBytes: &size},
			IsSSD:  true,
			IsNVMe: true,
			Result: scoring.Result{Tier: scoring.Excellent, Score: 204},
		}},
		Network: []collector.NetworkInfo{{Name: "Intel(R) Ethernet Controller I225-V", ConnectionID: &eth, SpeedBps: &speed, Connected: true}},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, " text ": FormatText, "": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig))
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, sampleSnapshot()))

	out := buf.String()
	assert.Contains(t, out, `"hostname": "bench-01"`)
	assert.Contains(t, out, `"tier": "Excellent"`)
	assert.Contains(t, out, `"total_gib": 32`)
	assert.Contains(t, out, `"is_nvme": true`)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, sampleSnapshot()))

	out := buf.String()
	assert.Contains(t, out, "hostname: bench-01\n")
	assert.Contains(t, out, "total_gib: 32\n")
	assert.Contains(t, out, "chipset: B650E\n")
	assert.NotContains(t, out, "{")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("id:")), bytes.Index(buf.Bytes(), []byte("hostname:")))
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, sampleSnapshot()))

	out := buf.String()
	assert.Contains(t, out, "1,250 ms")
	assert.Contains(t, out, "chipset B650E")
	assert.Contains(t, out, "16C/32T @ 4,501 MHz")
	assert.Contains(t, out, "16 GiB VRAM (registry)")
	assert.Contains(t, out, "32 GiB")
	assert.Contains(t, out, "2.0 TiB NVMe SSD")
	assert.Contains(t, out, "Excellent (112)")
	assert.Contains(t, out, "connected, 2.5 Gbps")
	assert.Contains(t, out, "0 USB, 0 camera, 0 Bluetooth")
}

func TestEncodeTextHistory(t *testing.T) {
	records := []store.SnapshotRecord{{
		ID:          "5b0c",
		Hostname:    "bench-01",
		CollectedAt: time.Now().Add(-3 * time.Hour),
		CPUTier:     "Excellent",
		GPUTier:     "Good",
		RAMTier:     "Average",
		DiskTier:    "Poor",
	}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, records))

	out := buf.String()
	assert.Contains(t, out, "HOST")
	assert.Contains(t, out, "bench-01")
	assert.Contains(t, out, "3 hours ago")
	assert.Contains(t, out, "Excellent  Good  Average  Poor")
}

func TestEncodeTextFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatText, map[string]int{"purged": 3}))
	assert.Equal(t, "purged: 3\n", buf.String())
}

func TestKratosCodec(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)

	s, err := structpb.NewStruct(map[string]any{"tier": "Good", "score": 70})
	require.NoError(t, err)

	data, err := c.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"Good","score":70}`, string(data))

	data, err = c.Marshal(scoring.Result{Tier: scoring.Poor, Score: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"Poor","score":3}`, string(data))

	var back scoring.Result
	require.NoError(t, c.Unmarshal(data, &back))
	assert.Equal(t, scoring.Poor, back.Tier)
}
