package heuristic

import "strings"

const GiB uint64 = 1 << 30

// SuspectVRAMBelow marks a reported capacity as likely truncated. The
// 32-bit adapter RAM property caps near 4 GiB and some drivers report
// only a shared aperture.
const SuspectVRAMBelow = GiB

// VRAM source names.
const (
	VRAMSourceReported = "reported"
	VRAMSourceRegistry = "registry"
	VRAMSourceTable    = "model_table"
)

// VRAMTableVersion identifies the model table revision.
const VRAMTableVersion = "2024.10"

// VRAMEntry maps a model-name fragment to its on-board memory.
type VRAMEntry struct {
	Pattern string
	Bytes   uint64
}

// VRAMTable is searched in order; more specific names precede names
// they contain.
var VRAMTable = []VRAMEntry{
	// NVIDIA RTX 40
	{"RTX 4090", 24 * GiB},
	{"RTX 4080 SUPER", 16 * GiB},
	{"RTX 4080", 16 * GiB},
	{"RTX 4070 TI SUPER", 16 * GiB},
	{"RTX 4070 TI", 12 * GiB},
	{"RTX 4070 SUPER", 12 * GiB},
	{"RTX 4070", 12 * GiB},
	{"RTX 4060 TI", 8 * GiB},
	{"RTX 4060", 8 * GiB},
	// NVIDIA RTX 30
	{"RTX 3090 TI", 24 * GiB},
	{"RTX 3090", 24 * GiB},
	{"RTX 3080 TI", 12 * GiB},
	{"RTX 3080", 10 * GiB},
	{"RTX 3070 TI", 8 * GiB},
	{"RTX 3070", 8 * GiB},
	{"RTX 3060 TI", 8 * GiB},
	{"RTX 3060", 12 * GiB},
	{"RTX 3050", 8 * GiB},
	// NVIDIA RTX 20 / GTX 16
	{"RTX 2080 TI", 11 * GiB},
	{"RTX 2080 SUPER", 8 * GiB},
	{"RTX 2080", 8 * GiB},
	{"RTX 2070", 8 * GiB},
	{"RTX 2060 SUPER", 8 * GiB},
	{"RTX 2060", 6 * GiB},
	{"GTX 1660", 6 * GiB},
	{"GTX 1650", 4 * GiB},
	{"GTX 1080 TI", 11 * GiB},
	{"GTX 1080", 8 * GiB},
	{"GTX 1070", 8 * GiB},
	{"GTX 1060", 6 * GiB},
	// AMD RX 7000
	{"RX 7900 XTX", 24 * GiB},
	{"RX 7900 XT", 20 * GiB},
	{"RX 7900 GRE", 16 * GiB},
	{"RX 7800 XT", 16 * GiB},
	{"RX 7700 XT", 12 * GiB},
	{"RX 7600 XT", 16 * GiB},
	{"RX 7600", 8 * GiB},
	// AMD RX 6000
	{"RX 6950 XT", 16 * GiB},
	{"RX 6900 XT", 16 * GiB},
	{"RX 6800 XT", 16 * GiB},
	{"RX 6800", 16 * GiB},
	{"RX 6750 XT", 12 * GiB},
	{"RX 6700 XT", 12 * GiB},
	{"RX 6700", 10 * GiB},
	{"RX 6650 XT", 8 * GiB},
	{"RX 6600 XT", 8 * GiB},
	{"RX 6600", 8 * GiB},
	{"RX 6500 XT", 4 * GiB},
	// Intel Arc
	{"ARC A770", 16 * GiB},
	{"ARC A750", 8 * GiB},
	{"ARC A580", 8 * GiB},
	{"ARC A380", 6 * GiB},
}

var trademarks = strings.NewReplacer("(R)", "", "(TM)", "")

// LookupVRAM returns the table capacity for the first entry whose
// pattern appears in name, ignoring case and trademark marks.
func LookupVRAM(name string) (uint64, bool) {
	upper := trademarks.Replace(strings.ToUpper(name))
	for _, e := range VRAMTable {
		if strings.Contains(upper, e.Pattern) {
			return e.Bytes, true
		}
	}
	return 0, false
}

// ResolveVRAM picks a capacity for one adapter. reported is the
// provider's adapter RAM (nil when null), registry reads the driver's
// published size. The model table is consulted only when neither
// produced a usable value.
func ResolveVRAM(name string, reported *uint64, registry func() (uint64, bool)) Resolution[uint64] {
	return Chain[uint64]{
		Prefer: Larger,
		Steps: []Step[uint64]{
			{Name: VRAMSourceReported, Propose: func(uint64, bool) (uint64, bool) {
				if reported == nil || *reported == 0 {
					return 0, false
				}
				return *reported, true
			}},
			{Name: VRAMSourceRegistry, Propose: func(uint64, bool) (uint64, bool) {
				if registry == nil {
					return 0, false
				}
				v, ok := registry()
				return v, ok && v > 0
			}},
			{Name: VRAMSourceTable, Propose: func(best uint64, found bool) (uint64, bool) {
				if found && best >= SuspectVRAMBelow {
					return 0, false
				}
				return LookupVRAM(name)
			}},
		},
	}.Resolve()
}
