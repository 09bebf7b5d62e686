package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

const watchChannelBufferSize = 4

// watcher holds the sample channel and metadata for a usage stream.
type watcher struct {
	ch          chan *structpb.Struct
	peer        string
	connectedAt time.Time
}

// WatcherInfo is a read-only snapshot of a connected watcher's metadata.
type WatcherInfo struct {
	ID          string    `json:"id"`
	Peer        string    `json:"peer"`
	ConnectedAt time.Time `json:"connected_at"`
}

// WatchRegistry fans usage samples out to connected WatchUsage streams.
// A single loop samples the shared usage monitor; watchers never poll it
// themselves.
type WatchRegistry struct {
	mu       sync.RWMutex
	watchers map[string]*watcher
	now      func() time.Time
}

// NewWatchRegistry creates an empty WatchRegistry.
func NewWatchRegistry() *WatchRegistry {
	return &WatchRegistry{
		watchers: make(map[string]*watcher),
		now:      time.Now,
	}
}

// Register adds a watcher and returns its id and sample channel.
func (r *WatchRegistry) Register(peer string) (string, <-chan *structpb.Struct) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan *structpb.Struct, watchChannelBufferSize)
	r.watchers[id] = &watcher{
		ch:          ch,
		peer:        peer,
		connectedAt: r.now(),
	}
	return id, ch
}

// Unregister closes and removes the channel for the given watcher.
func (r *WatchRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.watchers[id]; ok {
		close(w.ch)
		delete(r.watchers, id)
	}
}

// Broadcast offers msg to every watcher. A watcher whose buffer is full
// misses this sample; the next one will reach it.
func (r *WatchRegistry) Broadcast(msg *structpb.Struct) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for _, w := range r.watchers {
		select {
		case w.ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}

// Count returns the number of connected watchers.
func (r *WatchRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers)
}

// List returns connected watchers, oldest first.
func (r *WatchRegistry) List() []WatcherInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]WatcherInfo, 0, len(r.watchers))
	for id, w := range r.watchers {
		result = append(result, WatcherInfo{
			ID:          id,
			Peer:        w.peer,
			ConnectedAt: w.connectedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ConnectedAt.Before(result[j].ConnectedAt)
	})
	return result
}
