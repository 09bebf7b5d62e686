package source

import (
	"strings"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/siderolabs/go-smbios/smbios"
)

// Baseboard is the board identity from the firmware tables.
type Baseboard struct {
	Manufacturer string
	Product      string
	Version      string
	SerialNumber string
}

// Firmware reads the SMBIOS tables directly.
type Firmware interface {
	Baseboard() (Baseboard, error)
}

type smbiosFirmware struct{}

// NewFirmware returns an SMBIOS reader.
func NewFirmware() Firmware {
	return smbiosFirmware{}
}

func (smbiosFirmware) Baseboard() (Baseboard, error) {
	s, err := smbios.New()
	if err != nil {
		return Baseboard{}, errors.New().Wrap(errors.ErrConnectionUnavailable, err)
	}

	b := s.BaseboardInformation
	return Baseboard{
		Manufacturer: strings.TrimSpace(b.Manufacturer),
		Product:      strings.TrimSpace(b.Product),
		Version:      strings.TrimSpace(b.Version),
		SerialNumber: strings.TrimSpace(b.SerialNumber),
	}, nil
}
