package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Source records who stated a fact.
type Source string

const (
	SourceUser      Source = "user"
	SourceAssistant Source = "assistant"
	SourceTool      Source = "tool"
)

// Record is one durable fact tied to a thread. Content is "key:value".
type Record struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread_id"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags,omitempty"`
	Importance int       `json:"importance"`
	Source     Source    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// timeLayout is fixed-width so lexicographic ORDER BY matches chronology.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const memorySchema = `
CREATE TABLE IF NOT EXISTS memories (
	id         TEXT PRIMARY KEY,
	thread_id  TEXT NOT NULL,
	content    TEXT NOT NULL,
	tags       TEXT,
	importance INTEGER DEFAULT 1,
	source     TEXT DEFAULT 'user',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mem_thread ON memories(thread_id);
CREATE INDEX IF NOT EXISTS idx_mem_updated ON memories(updated_at);`

// Store is the SQLite-backed memory ledger. Safe for concurrent use across
// independent threads.
type Store struct {
	db *sql.DB
}

// Open creates or opens the memory database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty memory store path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create memory dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
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
	if _, err := db.Exec(memorySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init memory schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Add inserts a new record and returns its id.
func (s *Store) Add(ctx context.Context, threadID, content string, tags []string, importance int, source Source) (string, error) {
	if threadID == "" {
		return "", errors.New("memory record requires a thread_id")
	}
	if importance < 1 {
		importance = 1
	}
	if importance > 5 {
		importance = 5
	}
	if tags == nil {
		tags = []string{}
	}
	tagJSON, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(timeLayout)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO memories (id, thread_id, content, tags, importance, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, threadID, content, string(tagJSON), importance, string(source), now, now)
	if err != nil {
		return "", fmt.Errorf("add memory: %w", err)
	}
	return id, nil
}

// List returns up to limit records for the thread, newest first.
func (s *Store) List(ctx context.Context, threadID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, thread_id, content, tags, importance, source, created_at, updated_at
		FROM memories WHERE thread_id = ?
		ORDER BY updated_at DESC, created_at DESC LIMIT ?`, threadID, limit)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Search returns records whose content contains query, case-insensitively,
// newest first.
func (s *Store) Search(ctx context.Context, threadID, query string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 5
	}
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, thread_id, content, tags, importance, source, created_at, updated_at
		FROM memories WHERE thread_id = ? AND LOWER(content) LIKE ?
		ORDER BY updated_at DESC, created_at DESC LIMIT ?`, threadID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search memories: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Delete removes a record by id within its thread. Returns true when a row
// was deleted.
func (s *Store) Delete(ctx context.Context, threadID, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM memories WHERE id = ? AND thread_id = ?", id, threadID)
	if err != nil {
		return false, fmt.Errorf("delete memory: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete memory: %w", err)
	}
	return n > 0, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var r Record
		var tagJSON sql.NullString
		var source, created, updated string
		if err := rows.Scan(&r.ID, &r.ThreadID, &r.Content, &tagJSON, &r.Importance, &source, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		if tagJSON.Valid && tagJSON.String != "" {
			if err := json.Unmarshal([]byte(tagJSON.String), &r.Tags); err != nil {
				return nil, fmt.Errorf("decode tags: %w", err)
			}
		}
		r.Source = Source(source)
		r.CreatedAt, _ = time.Parse(timeLayout, created)
		r.UpdatedAt, _ = time.Parse(timeLayout, updated)
		out = append(out, r)
	}
	return out, rows.Err()
}
