package inventory

import (
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/collector"
	"github.com/go-tangra/go-tangra-hwscore/internal/scoring"
)

// ScoredCPU is a processor record with its rating.
type ScoredCPU struct {
	Info collector.CPUInfo `json:"info"`
	scoring.Result
}

// ScoredGPU is a video controller record with its rating.
type ScoredGPU struct {
	Info collector.GPUInfo `json:"info"`
	scoring.Result
}

// ScoredRAM is the module list with its aggregate and rating.
type ScoredRAM struct {
	Modules []collector.MemoryModule `json:"modules"`
	scoring.RAMSummary
}

// ScoredDisk is a disk record with media classification and rating.
type ScoredDisk struct {
	Info   collector.DiskInfo `json:"info"`
	IsSSD  bool               `json:"is_ssd"`
	IsNVMe bool               `json:"is_nvme"`
	scoring.Result
}

// FullHardwareInfo is one complete scored snapshot.
type FullHardwareInfo struct {
	ID          string                      `json:"id"`
	Hostname    string                      `json:"hostname"`
	CollectedAt time.Time                   `json:"collected_at"`
	DurationMS  int64                       `json:"duration_ms"`
	System      collector.SystemInfo        `json:"system"`
	Motherboard []collector.MotherboardInfo `json:"motherboard"`
	CPU         []ScoredCPU                 `json:"cpu"`
	GPU         []ScoredGPU                 `json:"gpu"`
	RAM         ScoredRAM                   `json:"ram"`
	Disks       []ScoredDisk                `json:"disks"`
	Monitors    []collector.MonitorInfo     `json:"monitors"`
	Network     []collector.NetworkInfo     `json:"network"`
	Sound       []collector.SoundInfo       `json:"sound"`
	Peripherals collector.Peripherals       `json:"peripherals"`
}
