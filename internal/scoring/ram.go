package scoring

// Stick is one memory module as far as scoring cares.
type Stick struct {
	CapacityBytes      uint64
	SpeedMHz           uint32
	ConfiguredClockMHz uint32
}

// effectiveSpeed prefers the configured clock when the firmware set one.
func (s Stick) effectiveSpeed() uint32 {
	if s.ConfiguredClockMHz > 0 {
		return s.ConfiguredClockMHz
	}
	return s.SpeedMHz
}

// RAMSummary is the aggregate over all installed modules.
type RAMSummary struct {
	TotalBytes  uint64 `json:"total_bytes"`
	TotalGiB    uint64 `json:"total_gib"`
	AvgSpeedMHz uint32 `json:"avg_speed_mhz"`
	Result
}

// RAM sums capacity, averages effective speed and rates the result.
// No modules rates Unknown.
func RAM(sticks []Stick) RAMSummary {
	if len(sticks) == 0 {
		return RAMSummary{Result: unknown}
	}

	var total, speedSum uint64
	for _, s := range sticks {
		total += s.CapacityBytes
		speedSum += uint64(s.effectiveSpeed())
	}

	totalGiB := total / gib
	avg := uint32(speedSum / uint64(len(sticks)))

	return RAMSummary{
		TotalBytes:  total,
		TotalGiB:    totalGiB,
		AvgSpeedMHz: avg,
		Result:      Result{Tier: RAMTier(totalGiB, avg), Score: RAMScore(totalGiB, avg)},
	}
}
