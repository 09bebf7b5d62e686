package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func sampleMsg(t *testing.T, pct float64) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(map[string]any{"cpu_percent": pct})
	require.NoError(t, err)
	return s
}

func TestWatchRegistryBroadcast(t *testing.T) {
	r := NewWatchRegistry()
	id1, ch1 := r.Register("10.0.0.1:5000")
	_, ch2 := r.Register("10.0.0.2:5000")
	assert.Equal(t, 2, r.Count())

	msg := sampleMsg(t, 12.5)
	assert.Equal(t, 2, r.Broadcast(msg))
	assert.Same(t, msg, <-ch1)
	assert.Same(t, msg, <-ch2)

	r.Unregister(id1)
	assert.Equal(t, 1, r.Count())
	_, open := <-ch1
	assert.False(t, open)

	// Unknown ids are ignored.
	r.Unregister("missing")
	assert.Equal(t, 1, r.Count())
}

func TestWatchRegistrySlowWatcherMissesSamples(t *testing.T) {
	r := NewWatchRegistry()
	_, ch := r.Register("slow")

	for i := range watchChannelBufferSize {
		assert.Equal(t, 1, r.Broadcast(sampleMsg(t, float64(i))))
	}
	assert.Equal(t, 0, r.Broadcast(sampleMsg(t, 99)))
	assert.Len(t, ch, watchChannelBufferSize)
}

func TestWatchRegistryListOldestFirst(t *testing.T) {
	r := NewWatchRegistry()
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, _ := r.Register("a")
	second, _ := r.Register("b")

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, "a", list[0].Peer)
	assert.Equal(t, second, list[1].ID)
	assert.True(t, list[0].ConnectedAt.Before(list[1].ConnectedAt))
}
