package checkpoint

import (
	"context"
	"sync"

	"github.com/maitredhq/maitred/internal/llm"
)

// memoryStore is the non-persistent fallback used when SQLite cannot open.
// Safe for concurrent use across threads.
type memoryStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemoryStore returns an empty in-memory checkpoint store.
func NewMemoryStore() Store {
	return &memoryStore{snaps: make(map[string]Snapshot)}
}

func (m *memoryStore) Get(_ context.Context, threadID string) (Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[threadID]
	if !ok {
		return Snapshot{}, false, nil
	}
	out := snap
	out.Messages = append([]llm.Message(nil), snap.Messages...)
	return out, true, nil
}

func (m *memoryStore) Put(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Copy the slice so later caller mutations can't alias stored state.
	stored := snap
	stored.Messages = append([]llm.Message(nil), snap.Messages...)
	m.snaps[snap.ThreadID] = stored
	return nil
}

func (m *memoryStore) Close() error { return nil }
