package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32PhysicalMemory struct {
	Capacity             *uint64
	Speed                *uint32
	ConfiguredClockSpeed *uint32
	Manufacturer         *string
	PartNumber           *string
	DeviceLocator        *string
	BankLabel            *string
	ConfiguredVoltage    *uint32
	MinVoltage           *uint32
	MaxVoltage           *uint32
	SerialNumber         *string
	DataWidth            *uint16
	TotalWidth           *uint16
	FormFactor           *uint16
	Status               *string
}

var physicalMemoryQuery = source.Query{
	Class: "Win32_PhysicalMemory",
	Fields: []string{
		"Capacity", "Speed", "ConfiguredClockSpeed", "Manufacturer", "PartNumber", "DeviceLocator",
		"BankLabel", "ConfiguredVoltage", "MinVoltage", "MaxVoltage", "SerialNumber",
		"DataWidth", "TotalWidth", "FormFactor", "Status",
	},
}

// Memory reads one record per installed module.
func (s *Session) Memory(_ context.Context) ([]MemoryModule, error) {
	var pm []win32PhysicalMemory
	if err := s.query(physicalMemoryQuery, &pm); err != nil {
		return nil, errors.New().Wrap(errors.ErrNoSourceAvailable, err).WithData("memory")
	}

	result := make([]MemoryModule, len(pm))
	for i, m := range pm {
		result[i] = MemoryModule{
			CapacityBytes:      valueOr(m.Capacity, 0),
			SpeedMHz:           valueOr(m.Speed, 0),
			ConfiguredClockMHz: m.ConfiguredClockSpeed,
			Manufacturer:       stringOr(m.Manufacturer, ""),
			PartNumber:         stringOr(m.PartNumber, ""),
			DeviceLocator:      stringOr(m.DeviceLocator, ""),
			BankLabel:          trimmed(m.BankLabel),
			ConfiguredVoltage:  m.ConfiguredVoltage,
			MinVoltage:         m.MinVoltage,
			MaxVoltage:         m.MaxVoltage,
			SerialNumber:       trimmed(m.SerialNumber),
			DataWidth:          m.DataWidth,
			TotalWidth:         m.TotalWidth,
			FormFactor:         m.FormFactor,
			Status:             trimmed(m.Status),
		}
	}
	return result, nil
}
