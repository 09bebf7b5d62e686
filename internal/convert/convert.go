// Package convert moves snapshots between their in-memory, stored and
// wire forms.
package convert

import (
	"encoding/json"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/scoring"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"
	"google.golang.org/protobuf/types/known/structpb"
)

var tierRank = map[scoring.Tier]int{
	scoring.Unknown:   0,
	scoring.Poor:      1,
	scoring.Average:   2,
	scoring.Good:      3,
	scoring.Excellent: 4,
}

// bestTier returns the highest tier in results, or Unknown for none.
func bestTier(results []scoring.Result) string {
	best := scoring.Unknown
	for _, r := range results {
		if tierRank[r.Tier] > tierRank[best] {
			best = r.Tier
		}
	}
	return string(best)
}

// SnapshotToRecord converts a snapshot to a store record. Multi-device
// domains are summarized by their best tier.
func SnapshotToRecord(snap *inventory.FullHardwareInfo) (*store.SnapshotRecord, error) {
	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrStorage, err).WithData("marshal snapshot")
	}

	cpu := make([]scoring.Result, len(snap.CPU))
	for i, c := range snap.CPU {
		cpu[i] = c.Result
	}
	gpu := make([]scoring.Result, len(snap.GPU))
	for i, g := range snap.GPU {
		gpu[i] = g.Result
	}
	disk := make([]scoring.Result, len(snap.Disks))
	for i, d := range snap.Disks {
		disk[i] = d.Result
	}

	return &store.SnapshotRecord{
		ID:           snap.ID,
		Hostname:     snap.Hostname,
		CollectedAt:  snap.CollectedAt,
		DurationMS:   snap.DurationMS,
		CPUTier:      bestTier(cpu),
		GPUTier:      bestTier(gpu),
		RAMTier:      string(snap.RAM.Tier),
		DiskTier:     bestTier(disk),
		SnapshotJSON: string(jsonBytes),
	}, nil
}

// RecordToSnapshot decodes a stored snapshot.
func RecordToSnapshot(rec *store.SnapshotRecord) (*inventory.FullHardwareInfo, error) {
	var snap inventory.FullHardwareInfo
	if err := json.Unmarshal([]byte(rec.SnapshotJSON), &snap); err != nil {
		return nil, errors.New().Wrap(errors.ErrStorage, err).WithData("unmarshal snapshot " + rec.ID)
	}
	return &snap, nil
}

// ToStruct converts any JSON-encodable value to a protobuf Struct.
// Values that do not encode to an object are wrapped under "items".
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}

	m, ok := decoded.(map[string]any)
	if !ok {
		m = map[string]any{"items": decoded}
	}
	return structpb.NewStruct(m)
}
