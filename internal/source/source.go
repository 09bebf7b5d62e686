// Package source wraps the data sources the hardware probes read from.
//
// Fast is cheap and always present but coarse. Detailed is the WMI
// connection: rich per-component records, expensive to open, and bound
// to the goroutine that opened it, so every concurrent probe unit opens
// its own through a Factory and never shares it. DriverRegistry and
// Firmware are auxiliary sources used by single probes.
package source

// Factory constructs fresh adapter instances. Constructors must not
// connect; connection happens on first use.
type Factory struct {
	NewFast     func() Fast
	NewDetailed func() Detailed
	NewRegistry func() DriverRegistry
	NewFirmware func() Firmware
}

// DefaultFactory returns the adapters for the running platform.
func DefaultFactory() Factory {
	return Factory{
		NewFast:     NewFast,
		NewDetailed: NewDetailed,
		NewRegistry: NewDriverRegistry,
		NewFirmware: NewFirmware,
	}
}
