package heuristic

import "strings"

var (
	nvmePatterns = []string{"NVME"}
	ssdPatterns  = []string{"SSD", "SOLID STATE", "NVME"}
)

// ClassifyMedia decides from the reported strings whether a disk is
// solid state and whether it sits on NVMe.
func ClassifyMedia(model, mediaType, interfaceType string) (ssd, nvme bool) {
	fields := strings.ToUpper(model + " " + mediaType + " " + interfaceType)
	nvme = matchesAny(fields, nvmePatterns)
	ssd = nvme || matchesAny(fields, ssdPatterns)
	return ssd, nvme
}
