package heuristic

import "strings"

// Chipsets lists known platform controller hub names, AMD first. A
// suffixed name precedes its prefix so X670E is not read as X670.
var Chipsets = []string{
	// AMD
	"X870", "X670E", "X670", "B650E", "B650", "A620",
	"X570", "B550", "A520", "X470", "B450", "X370", "B350",
	// Intel
	"Z890", "B860", "Z790", "B760", "H770", "H710",
	"Z690", "B660", "H670", "H610",
	"Z590", "B560", "H570", "H510",
	"Z490", "B460", "H470", "H410",
}

// ExtractChipset finds the chipset embedded in a board product string,
// or returns "" when none is known.
func ExtractChipset(product string) string {
	upper := strings.ToUpper(product)
	for _, c := range Chipsets {
		if strings.Contains(upper, c) {
			return c
		}
	}
	return ""
}
