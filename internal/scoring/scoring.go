// Package scoring maps normalized hardware attributes to a tier and an
// integer score. Tiers are checked top down; the first threshold met wins.
// Numeric scores truncate toward zero.
package scoring

// Tier is a categorical rating.
type Tier string

const (
	Excellent Tier = "Excellent"
	Good      Tier = "Good"
	Average   Tier = "Average"
	Poor      Tier = "Poor"
	Unknown   Tier = "Unknown"
)

const gib = 1 << 30

// Result is a tier with its numeric score.
type Result struct {
	Tier  Tier   `json:"tier"`
	Score uint32 `json:"score"`
}

var unknown = Result{Tier: Unknown}

// CPUTier rates a processor by physical cores and clock speed.
func CPUTier(cores, clockMHz uint32) Tier {
	switch {
	case cores >= 8 && clockMHz >= 3500:
		return Excellent
	case cores >= 6 && clockMHz >= 3000:
		return Good
	case cores >= 4:
		return Average
	}
	return Poor
}

// CPUScore is cores*2 + clock/40.
func CPUScore(cores, clockMHz uint32) uint32 {
	return uint32((80*uint64(cores) + uint64(clockMHz)) / 40)
}

// CPU rates a processor. Zero cores means the record carried no count.
func CPU(cores, clockMHz uint32) Result {
	if cores == 0 {
		return unknown
	}
	return Result{Tier: CPUTier(cores, clockMHz), Score: CPUScore(cores, clockMHz)}
}

// RAMTier rates total memory in GiB and average speed.
func RAMTier(totalGiB uint64, avgSpeedMHz uint32) Tier {
	switch {
	case totalGiB >= 32 && avgSpeedMHz >= 3200:
		return Excellent
	case totalGiB >= 16 && avgSpeedMHz >= 2666:
		return Good
	case totalGiB >= 8:
		return Average
	}
	return Poor
}

// RAMScore is GiB + speed/40.
func RAMScore(totalGiB uint64, avgSpeedMHz uint32) uint32 {
	return uint32((40*totalGiB + uint64(avgSpeedMHz)) / 40)
}

// GPUTier rates video memory in whole GiB.
func GPUTier(vramBytes uint64) Tier {
	switch g := vramBytes / gib; {
	case g >= 8:
		return Excellent
	case g >= 4:
		return Good
	case g >= 2:
		return Average
	}
	return Poor
}

// GPUScore is GiB*8.
func GPUScore(vramBytes uint64) uint32 {
	return uint32(vramBytes / gib * 8)
}

// GPU rates a video adapter. A nil capacity means none could be resolved.
func GPU(vramBytes *uint64) Result {
	if vramBytes == nil {
		return unknown
	}
	return Result{Tier: GPUTier(*vramBytes), Score: GPUScore(*vramBytes)}
}

// DiskTier rates capacity in whole GiB.
func DiskTier(sizeBytes uint64) Tier {
	switch g := sizeBytes / gib; {
	case g >= 1000:
		return Excellent
	case g >= 500:
		return Good
	case g >= 250:
		return Average
	}
	return Poor
}

// DiskScore is GiB/10.
func DiskScore(sizeBytes uint64) uint32 {
	return uint32(sizeBytes / gib / 10)
}

// Disk rates a physical disk. A nil size means the provider reported none.
func Disk(sizeBytes *uint64) Result {
	if sizeBytes == nil {
		return unknown
	}
	return Result{Tier: DiskTier(*sizeBytes), Score: DiskScore(*sizeBytes)}
}
