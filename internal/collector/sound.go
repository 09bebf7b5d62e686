package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32SoundDevice struct {
	Name         *string
	Manufacturer *string
	Status       *string
}

var soundDeviceQuery = source.Query{
	Class:  "Win32_SoundDevice",
	Fields: []string{"Name", "Manufacturer", "Status"},
}

// Sound reads audio devices.
func (s *Session) Sound(_ context.Context) ([]SoundInfo, error) {
	var devices []win32SoundDevice
	if err := s.query(soundDeviceQuery, &devices); err != nil {
		return nil, err
	}

	result := make([]SoundInfo, len(devices))
	for i, d := range devices {
		result[i] = SoundInfo{
			Name:         stringOr(d.Name, Unknown),
			Manufacturer: trimmed(d.Manufacturer),
			Status:       trimmed(d.Status),
		}
	}
	return result, nil
}
