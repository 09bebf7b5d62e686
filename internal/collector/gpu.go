package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/heuristic"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

type win32VideoController struct {
	Name                        *string
	DriverVersion               *string
	AdapterRAM                  *uint32
	VideoProcessor              *string
	AdapterCompatibility        *string
	CurrentHorizontalResolution *uint32
	CurrentVerticalResolution   *uint32
	CurrentRefreshRate          *uint32
}

var videoControllerQuery = source.Query{
	Class: "Win32_VideoController",
	Fields: []string{
		"Name", "DriverVersion", "AdapterRAM", "VideoProcessor", "AdapterCompatibility",
		"CurrentHorizontalResolution", "CurrentVerticalResolution", "CurrentRefreshRate",
	},
}

// GPU reads video controllers and resolves each one's memory size.
func (s *Session) GPU(_ context.Context) ([]GPUInfo, error) {
	var controllers []win32VideoController
	if err := s.query(videoControllerQuery, &controllers); err != nil {
		return nil, errors.New().Wrap(errors.ErrNoSourceAvailable, err).WithData("gpu")
	}

	result := make([]GPUInfo, len(controllers))
	for i, c := range controllers {
		name := stringOr(c.Name, "")

		var reported *uint64
		if c.AdapterRAM != nil {
			v := uint64(*c.AdapterRAM)
			reported = &v
		}

		r := heuristic.ResolveVRAM(name, reported, func() (uint64, bool) {
			return s.registryVRAM(name)
		})

		info := GPUInfo{
			Name:                 name,
			DriverVersion:        stringOr(c.DriverVersion, ""),
			VideoProcessor:       trimmed(c.VideoProcessor),
			AdapterCompatibility: trimmed(c.AdapterCompatibility),
			DisplayMode:          displayMode(c),
		}
		if r.Found {
			v := r.Value
			info.VRAMBytes = &v
			info.VRAMSource = r.Source
		}
		result[i] = info
	}
	return result, nil
}

// registryVRAM scans the display adapter keys for one whose driver
// description equals name and returns its published memory size.
func (s *Session) registryVRAM(name string) (uint64, bool) {
	if name == "" {
		return 0, false
	}

	reg := s.registrySource()
	keys, err := reg.AdapterKeys()
	if err != nil {
		logger.Debug().Err(err).Msg("display adapter registry unavailable")
		return 0, false
	}

	for _, key := range keys {
		desc, err := reg.StringValue(key, source.DriverDescValue)
		if err != nil || desc != name {
			continue
		}

		if v, err := reg.SizeValue(key, source.QwMemorySizeValue); err == nil && v > 0 {
			return v, true
		}
		if v, err := reg.SizeValue(key, source.MemorySizeValue); err == nil && v > 0 {
			return v, true
		}
	}
	return 0, false
}

func displayMode(c win32VideoController) *DisplayMode {
	if c.CurrentHorizontalResolution == nil || c.CurrentVerticalResolution == nil {
		return nil
	}
	if *c.CurrentHorizontalResolution == 0 || *c.CurrentVerticalResolution == 0 {
		return nil
	}
	return &DisplayMode{
		Width:     *c.CurrentHorizontalResolution,
		Height:    *c.CurrentVerticalResolution,
		RefreshHz: valueOr(c.CurrentRefreshRate, 0),
	}
}
