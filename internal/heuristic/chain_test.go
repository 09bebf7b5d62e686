package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func constant(v uint64) func(uint64, bool) (uint64, bool) {
	return func(uint64, bool) (uint64, bool) { return v, true }
}

func TestChainLargerWins(t *testing.T) {
	r := Chain[uint64]{
		Prefer: Larger,
		Steps: []Step[uint64]{
			{Name: "a", Propose: constant(2)},
			{Name: "b", Propose: constant(7)},
			{Name: "c", Propose: constant(5)},
		},
	}.Resolve()

	assert.True(t, r.Found)
	assert.Equal(t, uint64(7), r.Value)
	assert.Equal(t, "b", r.Source)
}

func TestChainEmpty(t *testing.T) {
	r := Chain[uint64]{
		Prefer: Larger,
		Steps: []Step[uint64]{
			{Name: "none", Propose: func(uint64, bool) (uint64, bool) { return 0, false }},
		},
	}.Resolve()

	assert.False(t, r.Found)
	assert.Empty(t, r.Source)
}

func TestChainStepsSeeBest(t *testing.T) {
	var seen []uint64
	spy := func(v uint64) func(uint64, bool) (uint64, bool) {
		return func(best uint64, _ bool) (uint64, bool) {
			seen = append(seen, best)
			return v, true
		}
	}

	Chain[uint64]{
		Prefer: Larger,
		Steps:  []Step[uint64]{{Propose: spy(3)}, {Propose: spy(1)}, {Propose: spy(9)}},
	}.Resolve()

	assert.Equal(t, []uint64{0, 3, 3}, seen)
}
