package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func slot(name string, usage uint16) Slot {
	return Slot{Designation: name, Usage: &usage}
}

func TestClassifySlots(t *testing.T) {
	slots := []Slot{
		slot("PCIEX16_1", 4),
		slot("PCIEX16_2", 3),
		slot("PCIEX1_1", 3),
		slot("M.2_1", 4),
		slot("M2_2", 3),
		{Designation: "PCIE_16 slot"},
	}

	gpu, ssd := ClassifySlots(slots)

	assert.Equal(t, uint32(3), gpu.Total)
	assert.Equal(t, uint32(1), gpu.Used)
	assert.Equal(t, []string{"PCIEX16_1: In Use", "PCIEX16_2: Empty", "PCIE_16 slot: Empty"}, gpu.Details)

	assert.Equal(t, uint32(2), ssd.Total)
	assert.Equal(t, uint32(1), ssd.Used)
	assert.Equal(t, []string{"M.2_1: In Use", "M2_2: Empty"}, ssd.Details)
}

func TestClassifySlotsDoubleCount(t *testing.T) {
	gpu, ssd := ClassifySlots([]Slot{slot("PCIEX16 M.2 combo", 4)})

	assert.Equal(t, uint32(1), gpu.Total)
	assert.Equal(t, uint32(1), ssd.Total)
	assert.Equal(t, uint32(1), gpu.Used)
	assert.Equal(t, uint32(1), ssd.Used)
}

func TestClassifySlotsIdempotent(t *testing.T) {
	slots := []Slot{slot("PCIEX16_1", 4), slot("M.2_1", 3), slot("PCI-E X16", 4)}

	gpu1, ssd1 := ClassifySlots(slots)
	gpu2, ssd2 := ClassifySlots(slots)

	assert.Equal(t, gpu1, gpu2)
	assert.Equal(t, ssd1, ssd2)
}

func TestRAMSlots(t *testing.T) {
	got := RAMSlots(4, 2)
	assert.Equal(t, uint32(4), got.Total)
	assert.Equal(t, uint32(2), got.Used)
	assert.Equal(t, []string{"Used 2 of 4 slots"}, got.Details)
}
