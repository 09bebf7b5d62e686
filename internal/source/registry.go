package source

import "encoding/binary"

// DriverRegistry reads the per-adapter configuration keys that display
// drivers publish under the display device class.
type DriverRegistry interface {
	// AdapterKeys lists the numbered adapter subkeys ("0000", "0001", ...).
	AdapterKeys() ([]string, error)
	// StringValue reads a string value from an adapter subkey.
	StringValue(key, name string) (string, error)
	// SizeValue reads an unsigned integer value stored as DWORD, QWORD
	// or little-endian binary.
	SizeValue(key, name string) (uint64, error)
}

// Value names under each adapter subkey.
const (
	DriverDescValue   = "DriverDesc"
	QwMemorySizeValue = "HardwareInformation.qwMemorySize"
	MemorySizeValue   = "HardwareInformation.MemorySize"
)

// decodeSize interprets a binary registry value as a little-endian
// unsigned integer. Drivers write both 4 and 8 byte forms.
func decodeSize(b []byte) (uint64, bool) {
	switch len(b) {
	case 8:
		return binary.LittleEndian.Uint64(b), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), true
	}
	return 0, false
}

func isAdapterKey(name string) bool {
	if len(name) != 4 {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
