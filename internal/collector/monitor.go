package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32DesktopMonitor struct {
	Name                *string
	MonitorManufacturer *string
	ScreenWidth         *uint32
	ScreenHeight        *uint32
}

var desktopMonitorQuery = source.Query{
	Class:  "Win32_DesktopMonitor",
	Fields: []string{"Name", "MonitorManufacturer", "ScreenHeight", "ScreenWidth"},
}

// Monitors reads desktop monitors. Unnamed monitors get a generic name.
func (s *Session) Monitors(_ context.Context) ([]MonitorInfo, error) {
	var monitors []win32DesktopMonitor
	if err := s.query(desktopMonitorQuery, &monitors); err != nil {
		return nil, err
	}

	result := make([]MonitorInfo, len(monitors))
	for i, m := range monitors {
		result[i] = MonitorInfo{
			Name:         stringOr(m.Name, GenericMonitor),
			Manufacturer: trimmed(m.MonitorManufacturer),
			ScreenWidth:  m.ScreenWidth,
			ScreenHeight: m.ScreenHeight,
		}
	}
	return result, nil
}
