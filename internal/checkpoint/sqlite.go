package checkpoint

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maitredhq/maitred/internal/llm"
	_ "modernc.org/sqlite"
)

const checkpointSchema = `
CREATE TABLE IF NOT EXISTS checkpoints (
	thread_id  TEXT PRIMARY KEY,
	messages   TEXT NOT NULL,
	summary    TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);`

type sqliteStore struct {
	db *sql.DB
}

func openSQLite(path string) (*sqliteStore, error) {
	if path == "" {
		return nil, errors.New("empty checkpoint path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}
	// Single writer; WAL keeps concurrent thread reads cheap.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(checkpointSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init checkpoint schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(ctx context.Context, threadID string) (Snapshot, bool, error) {
	var msgsJSON, summary string
	err := s.db.QueryRowContext(ctx,
		"SELECT messages, summary FROM checkpoints WHERE thread_id = ?", threadID,
	).Scan(&msgsJSON, &summary)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("get checkpoint %q: %w", threadID, err)
	}

	var msgs []llm.Message
	if err := json.Unmarshal([]byte(msgsJSON), &msgs); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode checkpoint %q: %w", threadID, err)
	}
	return Snapshot{ThreadID: threadID, Messages: msgs, Summary: summary}, true, nil
}

func (s *sqliteStore) Put(ctx context.Context, snap Snapshot) error {
	if snap.ThreadID == "" {
		return errors.New("checkpoint requires a thread_id")
	}
	msgs := snap.Messages
	if msgs == nil {
		msgs = []llm.Message{}
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode checkpoint %q: %w", snap.ThreadID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (thread_id, messages, summary, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(thread_id) DO UPDATE SET
			messages = excluded.messages,
			summary = excluded.summary,
			updated_at = excluded.updated_at`,
		snap.ThreadID, string(b), snap.Summary, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("put checkpoint %q: %w", snap.ThreadID, err)
	}
	return nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
