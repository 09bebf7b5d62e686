package collector

// Probe source names for CPUInfo.Source.
const (
	SourceFast     = "fast"
	SourceDetailed = "detailed"
)

// Defaults for attributes the provider leaves empty.
const (
	Unknown        = "Unknown"
	GenericMonitor = "Generic Monitor"
)

// SystemInfo holds computer manufacturer, model, and chassis serial number.
type SystemInfo struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
}

// CPUInfo holds processor details.
type CPUInfo struct {
	Name                  string  `json:"name"`
	Manufacturer          string  `json:"manufacturer"`
	MaxClockSpeedMHz      uint32  `json:"max_clock_speed_mhz"`
	Cores                 uint32  `json:"cores"`
	LogicalProcessors     uint32  `json:"logical_processors"`
	L2CacheKB             *uint32 `json:"l2_cache_kb,omitempty"`
	L3CacheKB             *uint32 `json:"l3_cache_kb,omitempty"`
	SocketDesignation     *string `json:"socket_designation,omitempty"`
	Description           *string `json:"description,omitempty"`
	VirtualizationEnabled *bool   `json:"virtualization_enabled,omitempty"`
	Source                string  `json:"source"`
}

// DisplayMode is the adapter's current output mode.
type DisplayMode struct {
	Width     uint32 `json:"width"`
	Height    uint32 `json:"height"`
	RefreshHz uint32 `json:"refresh_hz,omitempty"`
}

// GPUInfo holds video controller details. VRAMBytes is the resolved
// capacity; VRAMSource names the resolution step that produced it.
type GPUInfo struct {
	Name                 string       `json:"name"`
	DriverVersion        string       `json:"driver_version"`
	VRAMBytes            *uint64      `json:"vram_bytes,omitempty"`
	VRAMSource           string       `json:"vram_source,omitempty"`
	VideoProcessor       *string      `json:"video_processor,omitempty"`
	AdapterCompatibility *string      `json:"adapter_compatibility,omitempty"`
	DisplayMode          *DisplayMode `json:"display_mode,omitempty"`
}

// MemoryModule holds details for a single physical memory DIMM.
type MemoryModule struct {
	CapacityBytes      uint64  `json:"capacity_bytes"`
	SpeedMHz           uint32  `json:"speed_mhz"`
	ConfiguredClockMHz *uint32 `json:"configured_clock_mhz,omitempty"`
	Manufacturer       string  `json:"manufacturer"`
	PartNumber         string  `json:"part_number"`
	DeviceLocator      string  `json:"device_locator"`
	BankLabel          *string `json:"bank_label,omitempty"`
	ConfiguredVoltage  *uint32 `json:"configured_voltage_mv,omitempty"`
	MinVoltage         *uint32 `json:"min_voltage_mv,omitempty"`
	MaxVoltage         *uint32 `json:"max_voltage_mv,omitempty"`
	SerialNumber       *string `json:"serial_number,omitempty"`
	DataWidth          *uint16 `json:"data_width,omitempty"`
	TotalWidth         *uint16 `json:"total_width,omitempty"`
	FormFactor         *uint16 `json:"form_factor,omitempty"`
	Status             *string `json:"status,omitempty"`
}

// DiskInfo holds physical disk details.
type DiskInfo struct {
	Model            string  `json:"model"`
	SizeBytes        *uint64 `json:"size_bytes,omitempty"`
	MediaType        string  `json:"media_type"`
	InterfaceType    string  `json:"interface_type"`
	Status           string  `json:"status"`
	SerialNumber     string  `json:"serial_number"`
	FirmwareRevision string  `json:"firmware_revision"`
	Partitions       uint32  `json:"partitions"`
}

// SlotInfo counts slots of one kind. Used is not clamped to Total: a
// designation matching several kinds is counted under each.
type SlotInfo struct {
	Total   uint32   `json:"total"`
	Used    uint32   `json:"used"`
	Details []string `json:"details"`
}

// MotherboardInfo holds baseboard identity and slot inventory.
type MotherboardInfo struct {
	Manufacturer string   `json:"manufacturer"`
	Product      string   `json:"product"`
	Version      string   `json:"version"`
	SerialNumber string   `json:"serial_number"`
	Chipset      string   `json:"chipset"`
	SSDSlots     SlotInfo `json:"ssd_slots"`
	GPUSlots     SlotInfo `json:"gpu_slots"`
	RAMSlots     SlotInfo `json:"ram_slots"`
}

// MonitorInfo holds connected display details.
type MonitorInfo struct {
	Name         string  `json:"name"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	ScreenWidth  *uint32 `json:"screen_width,omitempty"`
	ScreenHeight *uint32 `json:"screen_height,omitempty"`
}

// NetworkInfo holds details for a connection-bearing network adapter.
type NetworkInfo struct {
	Name             string  `json:"name"`
	Manufacturer     *string `json:"manufacturer,omitempty"`
	AdapterType      *string `json:"adapter_type,omitempty"`
	ConnectionID     *string `json:"connection_id,omitempty"`
	SpeedBps         *uint64 `json:"speed_bps,omitempty"`
	MACAddress       *string `json:"mac_address,omitempty"`
	ConnectionStatus *uint16 `json:"connection_status,omitempty"`
	Connected        bool    `json:"connected"`
}

// SoundInfo holds audio device details.
type SoundInfo struct {
	Name         string  `json:"name"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// PnPDevice is a plug-and-play device entry.
type PnPDevice struct {
	Name         string  `json:"name"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Status       *string `json:"status,omitempty"`
	PnPClass     *string `json:"pnp_class,omitempty"`
}

// Peripherals groups plug-and-play devices by class.
type Peripherals struct {
	USB       []PnPDevice `json:"usb"`
	Cameras   []PnPDevice `json:"cameras"`
	Bluetooth []PnPDevice `json:"bluetooth"`
}
