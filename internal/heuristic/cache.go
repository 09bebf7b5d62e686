package heuristic

import "slices"

// CacheSizesKB are cache memory sizes in KB as listed by the provider,
// one per cache instance and in no particular level order.
type CacheSizesKB []uint32

// AssignCaches fills missing L2/L3 sizes from the cache list: the
// largest becomes L3, the second largest L2. Values already present
// are kept.
func AssignCaches(l2, l3 *uint32, sizes CacheSizesKB) (*uint32, *uint32) {
	sorted := make([]uint32, 0, len(sizes))
	for _, s := range sizes {
		if s > 0 {
			sorted = append(sorted, s)
		}
	}
	slices.Sort(sorted)
	slices.Reverse(sorted)

	if missing(l3) && len(sorted) > 0 {
		v := sorted[0]
		l3 = &v
	}
	if missing(l2) && len(sorted) > 1 {
		v := sorted[1]
		l2 = &v
	}
	return l2, l3
}

func missing(v *uint32) bool {
	return v == nil || *v == 0
}
