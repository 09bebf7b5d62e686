package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/heuristic"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32BaseBoard struct {
	Manufacturer *string
	Product      *string
	Version      *string
	SerialNumber *string
}

type win32SystemSlot struct {
	SlotDesignation *string
	CurrentUsage    *uint16
}

type win32PhysicalMemoryArray struct {
	MemoryDevices *uint16
}

type win32MemoryCapacity struct {
	Capacity *uint64
}

var (
	baseBoardQuery = source.Query{
		Class:  "Win32_BaseBoard",
		Fields: []string{"Manufacturer", "Product", "Version", "SerialNumber"},
	}
	systemSlotQuery   = source.Query{Class: "Win32_SystemSlot", Fields: []string{"SlotDesignation", "CurrentUsage"}}
	memoryArrayQuery  = source.Query{Class: "Win32_PhysicalMemoryArray", Fields: []string{"MemoryDevices"}}
	memoryModuleQuery = source.Query{Class: "Win32_PhysicalMemory", Fields: []string{"Capacity"}}
)

// Motherboard reads the baseboard identity and derives chipset and slot
// occupancy. The slot queries are auxiliary: their failure leaves the
// slot data empty. When the detailed source has no board, the firmware
// tables supply the identity.
func (s *Session) Motherboard(_ context.Context) ([]MotherboardInfo, error) {
	var boards []win32BaseBoard
	queryErr := s.query(baseBoardQuery, &boards)

	var result []MotherboardInfo
	for _, b := range boards {
		result = append(result, MotherboardInfo{
			Manufacturer: stringOr(b.Manufacturer, ""),
			Product:      stringOr(b.Product, ""),
			Version:      stringOr(b.Version, ""),
			SerialNumber: stringOr(b.SerialNumber, ""),
		})
	}

	if len(result) == 0 {
		board, err := s.firmwareSource().Baseboard()
		switch {
		case err == nil && board.Product != "":
			result = append(result, MotherboardInfo{
				Manufacturer: board.Manufacturer,
				Product:      board.Product,
				Version:      board.Version,
				SerialNumber: board.SerialNumber,
			})
		case queryErr != nil:
			return nil, errors.New().Wrap(errors.ErrNoSourceAvailable, queryErr).WithData("motherboard")
		default:
			return nil, nil
		}
	}

	gpu, ssd, ram := s.slotInventory(queryErr == nil)
	for i := range result {
		chipset := heuristic.ExtractChipset(result[i].Product)
		if chipset == "" {
			chipset = Unknown
		}
		result[i].Chipset = chipset
		result[i].GPUSlots = gpu
		result[i].SSDSlots = ssd
		result[i].RAMSlots = ram
	}
	return result, nil
}

// slotInventory tallies expansion and memory slots. Without a detailed
// connection every tally is empty.
func (s *Session) slotInventory(connected bool) (gpu, ssd, ram SlotInfo) {
	empty := SlotInfo{Details: []string{}}
	if !connected {
		return empty, empty, empty
	}

	var slots []win32SystemSlot
	if err := s.query(systemSlotQuery, &slots); err != nil {
		logger.Debug().Err(err).Msg("system slot query failed")
	}

	hs := make([]heuristic.Slot, len(slots))
	for i, sl := range slots {
		hs[i] = heuristic.Slot{Designation: stringOr(sl.SlotDesignation, ""), Usage: sl.CurrentUsage}
	}
	gpuTally, ssdTally := heuristic.ClassifySlots(hs)

	var arrays []win32PhysicalMemoryArray
	if err := s.query(memoryArrayQuery, &arrays); err != nil {
		logger.Debug().Err(err).Msg("memory array query failed")
	}
	var total uint32
	if len(arrays) > 0 {
		total = uint32(valueOr(arrays[0].MemoryDevices, 0))
	}

	var modules []win32MemoryCapacity
	if err := s.query(memoryModuleQuery, &modules); err != nil {
		logger.Debug().Err(err).Msg("memory module query failed")
	}

	return slotInfo(gpuTally), slotInfo(ssdTally), slotInfo(heuristic.RAMSlots(total, len(modules)))
}

func slotInfo(t heuristic.SlotTally) SlotInfo {
	details := t.Details
	if details == nil {
		details = []string{}
	}
	return SlotInfo{Total: t.Total, Used: t.Used, Details: details}
}
