package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignCaches(t *testing.T) {
	l2, l3 := AssignCaches(nil, ptr(uint32(0)), CacheSizesKB{512, 32768, 0, 8192})

	require.NotNil(t, l2)
	require.NotNil(t, l3)
	assert.Equal(t, uint32(8192), *l2)
	assert.Equal(t, uint32(32768), *l3)
}

func TestAssignCachesKeepsPresent(t *testing.T) {
	l2, l3 := AssignCaches(ptr(uint32(1024)), nil, CacheSizesKB{16384, 4096})

	assert.Equal(t, uint32(1024), *l2)
	assert.Equal(t, uint32(16384), *l3)
}

func TestAssignCachesSingleEntry(t *testing.T) {
	l2, l3 := AssignCaches(nil, nil, CacheSizesKB{6144})

	assert.Nil(t, l2)
	require.NotNil(t, l3)
	assert.Equal(t, uint32(6144), *l3)
}
