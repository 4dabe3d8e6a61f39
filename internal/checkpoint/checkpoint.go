// Package checkpoint persists the latest conversation snapshot per thread.
//
// Semantics are last-write-wins: Get returns the newest Put for a thread,
// and no history of earlier snapshots is kept. The default backend is an
// embedded SQLite database; when it cannot be opened the store degrades to
// a process-lifetime in-memory map instead of failing the caller.
package checkpoint

import (
	"context"

	"github.com/maitredhq/maitred/internal/llm"
	"go.uber.org/zap"
)

// Snapshot is the persisted state of one thread.
type Snapshot struct {
	ThreadID string        `json:"thread_id"`
	Messages []llm.Message `json:"messages"`
	Summary  string        `json:"summary,omitempty"`
}

// Store is the checkpoint contract: get latest, replace latest.
type Store interface {
	// Get returns the latest snapshot for the thread; ok is false when the
	// thread has no checkpoint yet.
	Get(ctx context.Context, threadID string) (snap Snapshot, ok bool, err error)
	// Put replaces the thread's snapshot.
	Put(ctx context.Context, snap Snapshot) error
	Close() error
}

// Open returns a SQLite-backed store at path, or an in-memory store when
// the database cannot be opened. The degradation is logged once at Warn.
func Open(path string, logger *zap.Logger) Store {
	s, err := openSQLite(path)
	if err != nil {
		logger.Warn("checkpoint store degraded to in-memory; state will not survive restarts",
			zap.String("path", path), zap.Error(err))
		return NewMemoryStore()
	}
	return s
}
