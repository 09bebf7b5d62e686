package convert

import (
	"testing"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/scoring"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRecordRoundTrip(t *testing.T) {
	snap := &inventory.FullHardwareInfo{
		ID:          "8d0f",
		Hostname:    "bench-01",
		CollectedAt: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
		DurationMS:  900,
		CPU:         []inventory.ScoredCPU{{Info: collector.CPUInfo{Name: "cpu"}, Result: scoring.Result{Tier: scoring.Good, Score: 95}}},
		GPU: []inventory.ScoredGPU{
			{Result: scoring.Result{Tier: scoring.Average}},
			{Result: scoring.Result{Tier: scoring.Excellent}},
		},
		RAM: inventory.ScoredRAM{RAMSummary: scoring.RAMSummary{Result: scoring.Result{Tier: scoring.Poor}}},
	}

	rec, err := SnapshotToRecord(snap)
	require.NoError(t, err)
	assert.Equal(t, "8d0f", rec.ID)
	assert.Equal(t, "Good", rec.CPUTier)
	assert.Equal(t, "Excellent", rec.GPUTier)
	assert.Equal(t, "Poor", rec.RAMTier)
	assert.Equal(t, "Unknown", rec.DiskTier)

	back, err := RecordToSnapshot(rec)
	require.NoError(t, err)
	assert.Equal(t, snap.Hostname, back.Hostname)
	assert.Equal(t, uint32(95), back.CPU[0].Score)
	assert.Equal(t, "cpu", back.CPU[0].Info.Name)
}

func TestRecordToSnapshotBadJSON(t *testing.T) {
	_, err := RecordToSnapshot(&store.SnapshotRecord{ID: "x", SnapshotJSON: "{"})
	assert.Error(t, err)
}

func TestToStruct(t *testing.T) {
	s, err := ToStruct(scoring.Result{Tier: scoring.Good, Score: 70})
	require.NoError(t, err)
	assert.Equal(t, "Good", s.Fields["tier"].GetStringValue())
	assert.Equal(t, 70.0, s.Fields["score"].GetNumberValue())

	s, err = ToStruct([]collector.SoundInfo{{Name: "Realtek"}})
	require.NoError(t, err)
	items := s.Fields["items"].GetListValue().GetValues()
	require.Len(t, items, 1)
	assert.Equal(t, "Realtek", items[0].GetStructValue().Fields["name"].GetStringValue())
}
