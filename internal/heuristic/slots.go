package heuristic

import (
	"fmt"
	"strings"
)

// Slot designation fragments. A designation matching both sets is
// counted in both.
var (
	GPUSlotPatterns = []string{"PCIEX16", "PCIE_16", "PCI-E X16"}
	SSDSlotPatterns = []string{"M.2", "M2_"}
)

// SlotUsageInUse is the CurrentUsage code for an occupied slot.
const SlotUsageInUse = 4

// Slot is one system slot as reported by the provider.
type Slot struct {
	Designation string
	Usage       *uint16
}

// SlotTally counts the slots of one kind.
type SlotTally struct {
	Total   uint32
	Used    uint32
	Details []string
}

func (s Slot) inUse() bool {
	return s.Usage != nil && *s.Usage == SlotUsageInUse
}

func (s Slot) detail() string {
	state := "Empty"
	if s.inUse() {
		state = "In Use"
	}
	return s.Designation + ": " + state
}

func (t *SlotTally) add(s Slot) {
	t.Total++
	if s.inUse() {
		t.Used++
	}
	t.Details = append(t.Details, s.detail())
}

func matchesAny(upper string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// ClassifySlots tallies GPU and SSD slots by designation.
func ClassifySlots(slots []Slot) (gpu, ssd SlotTally) {
	for _, s := range slots {
		upper := strings.ToUpper(s.Designation)
		if matchesAny(upper, GPUSlotPatterns) {
			gpu.add(s)
		}
		if matchesAny(upper, SSDSlotPatterns) {
			ssd.add(s)
		}
	}
	return gpu, ssd
}

// RAMSlots combines the memory array's device count with the number of
// populated modules.
func RAMSlots(total uint32, populated int) SlotTally {
	return SlotTally{
		Total:   total,
		Used:    uint32(populated),
		Details: []string{fmt.Sprintf("Used %d of %d slots", populated, total)},
	}
}
