package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32ComputerSystem struct {
	Manufacturer *string
	Model        *string
}

type win32BIOS struct {
	SerialNumber *string
}

var (
	computerSystemQuery = source.Query{Class: "Win32_ComputerSystem", Fields: []string{"Manufacturer", "Model"}}
	biosQuery           = source.Query{Class: "Win32_BIOS", Fields: []string{"SerialNumber"}}
)

// System reads the computer manufacturer, model and chassis serial number.
func (s *Session) System(_ context.Context) (SystemInfo, error) {
	var cs []win32ComputerSystem
	if err := s.query(computerSystemQuery, &cs); err != nil {
		return SystemInfo{}, err
	}

	var bios []win32BIOS
	if err := s.query(biosQuery, &bios); err != nil {
		return SystemInfo{}, err
	}

	info := SystemInfo{}
	if len(cs) > 0 {
		info.Manufacturer = stringOr(cs[0].Manufacturer, "")
		info.Model = stringOr(cs[0].Model, "")
	}
	if len(bios) > 0 {
		info.SerialNumber = stringOr(bios[0].SerialNumber, "")
	}
	return info, nil
}
