// Package collector probes one hardware domain at a time over the
// sources in package source.
//
// A Session owns the adapters for one unit of work: it opens them
// lazily and closes them together. Sessions must not be shared between
// goroutines. The Collector methods are the single-domain accessors;
// each one opens a session of its own.
package collector

import (
	"context"

	"github.com/go-tangra/go-tangra-hwscore/internal/source"
)

// Collector hands out sessions backed by a source factory.
type Collector struct {
	factory source.Factory
}

// New returns a Collector using factory for every session.
func New(factory source.Factory) *Collector {
	return &Collector{factory: factory}
}

// Open starts a session. Nothing connects until a probe needs it.
func (c *Collector) Open() *Session {
	return &Session{factory: c.factory}
}

// Session holds the adapters of one unit.
type Session struct {
	factory source.Factory

	fast     source.Fast
	detailed source.Detailed
	registry source.DriverRegistry
	firmware source.Firmware
}

func (s *Session) fastSource() source.Fast {
	if s.fast == nil {
		s.fast = s.factory.NewFast()
	}
	return s.fast
}

// detailedSource returns the session's connected detailed source.
func (s *Session) detailedSource() (source.Detailed, error) {
	if s.detailed == nil {
		s.detailed = s.factory.NewDetailed()
	}
	if err := s.detailed.Initialize(); err != nil {
		return nil, err
	}
	return s.detailed, nil
}

func (s *Session) registrySource() source.DriverRegistry {
	if s.registry == nil {
		s.registry = s.factory.NewRegistry()
	}
	return s.registry
}

func (s *Session) firmwareSource() source.Firmware {
	if s.firmware == nil {
		s.firmware = s.factory.NewFirmware()
	}
	return s.firmware
}

// Close releases the detailed connection if one was opened.
func (s *Session) Close() error {
	if s.detailed == nil {
		return nil
	}
	err := s.detailed.Close()
	s.detailed = nil
	return err
}

// query runs q on the session's detailed source, connecting first if needed.
func (s *Session) query(q source.Query, dst any) error {
	det, err := s.detailedSource()
	if err != nil {
		return err
	}
	return det.Query(q, dst)
}

func withSession[T any](c *Collector, probe func(*Session) (T, error)) (T, error) {
	s := c.Open()
	defer s.Close()
	return probe(s)
}

// CPU probes processors.
func (c *Collector) CPU(ctx context.Context) ([]CPUInfo, error) {
	return withSession(c, func(s *Session) ([]CPUInfo, error) { return s.CPU(ctx) })
}

// GPU probes video controllers.
func (c *Collector) GPU(ctx context.Context) ([]GPUInfo, error) {
	return withSession(c, func(s *Session) ([]GPUInfo, error) { return s.GPU(ctx) })
}

// Memory probes installed memory modules.
func (c *Collector) Memory(ctx context.Context) ([]MemoryModule, error) {
	return withSession(c, func(s *Session) ([]MemoryModule, error) { return s.Memory(ctx) })
}

// Disks probes physical disks.
func (c *Collector) Disks(ctx context.Context) ([]DiskInfo, error) {
	return withSession(c, func(s *Session) ([]DiskInfo, error) { return s.Disks(ctx) })
}

// Motherboard probes the baseboard and its slots.
func (c *Collector) Motherboard(ctx context.Context) ([]MotherboardInfo, error) {
	return withSession(c, func(s *Session) ([]MotherboardInfo, error) { return s.Motherboard(ctx) })
}

// Monitors probes desktop monitors.
func (c *Collector) Monitors(ctx context.Context) ([]MonitorInfo, error) {
	return withSession(c, func(s *Session) ([]MonitorInfo, error) { return s.Monitors(ctx) })
}

// Network probes network adapters.
func (c *Collector) Network(ctx context.Context) ([]NetworkInfo, error) {
	return withSession(c, func(s *Session) ([]NetworkInfo, error) { return s.Network(ctx) })
}

// Sound probes audio devices.
func (c *Collector) Sound(ctx context.Context) ([]SoundInfo, error) {
	return withSession(c, func(s *Session) ([]SoundInfo, error) { return s.Sound(ctx) })
}

// Peripherals probes USB, camera and Bluetooth devices.
func (c *Collector) Peripherals(ctx context.Context) (Peripherals, error) {
	return withSession(c, func(s *Session) (Peripherals, error) { return s.Peripherals(ctx) })
}

// System probes computer identity.
func (c *Collector) System(ctx context.Context) (SystemInfo, error) {
	return withSession(c, func(s *Session) (SystemInfo, error) { return s.System(ctx) })
}
