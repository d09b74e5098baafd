// Package sqlite provides a SQLite-backed implementation of the
// storage.Queue interface using Go's standard database/sql package.
//
// SQLite keeps the whole queue in a single file on disk, which is exactly
// what a fallback store needs: no network, no separate server, and the
// entries are still there after a restart.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql;
// its error type is also used to detect duplicate local IDs.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/enrollment-intake/internal/storage"
	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// SQLite is the concrete implementation of storage.Queue.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens (or creates) the queue file at path and makes sure the
// pending_enrollments table exists.
//
// WAL mode lets readers run alongside the writer, and the busy timeout
// makes concurrent appends wait for the write lock instead of failing.
func New(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=FULL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent - safe to run on every startup.
	//
	// Schema:
	//   seq         - insertion order, so ListPending is oldest first
	//   local_id    - identifier handed back to the caller, unique
	//   record      - the EnrollmentRecord as JSON
	//   captured_at - client clock when the entry was captured (RFC 3339)
	//   status      - review status, always pending_review on insert
	//   sync_status - pending_sync until a sync process drains the entry
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS pending_enrollments (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			local_id    TEXT    NOT NULL UNIQUE,
			record      TEXT    NOT NULL,
			captured_at TEXT    NOT NULL,
			status      TEXT    NOT NULL,
			sync_status TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Append inserts entry as a single row. One INSERT per append means
// concurrent appends never read-modify-write a shared collection.
func (s *SQLite) Append(ctx context.Context, entry types.PendingEnrollment) (string, error) {
	if entry.LocalID == "" {
		return "", errors.New("Append: local id is required")
	}

	record, err := json.Marshal(entry.Record)
	if err != nil {
		return "", fmt.Errorf("Append: encode record: %w", err)
	}

	_, err = s.Db.ExecContext(ctx,
		"INSERT INTO pending_enrollments (local_id, record, captured_at, status, sync_status) VALUES (?, ?, ?, ?, ?)",
		entry.LocalID,
		string(record),
		entry.CapturedAt.UTC().Format(time.RFC3339Nano),
		entry.Status,
		entry.SyncStatus,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return "", fmt.Errorf("Append: %s: %w", entry.LocalID, storage.ErrDuplicateID)
		}
		return "", fmt.Errorf("Append: exec: %w", err)
	}

	return entry.LocalID, nil
}

// GetPending fetches one queued entry by local ID.
func (s *SQLite) GetPending(ctx context.Context, localID string) (types.PendingEnrollment, error) {
	row := s.Db.QueryRowContext(ctx,
		"SELECT local_id, record, captured_at, status, sync_status FROM pending_enrollments WHERE local_id = ? LIMIT 1",
		localID,
	)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.PendingEnrollment{}, fmt.Errorf("GetPending: %s: %w", localID, storage.ErrNotFound)
		}
		return types.PendingEnrollment{}, fmt.Errorf("GetPending: scan: %w", err)
	}
	return entry, nil
}

// ListPending returns every queued entry in insertion order.
func (s *SQLite) ListPending(ctx context.Context) ([]types.PendingEnrollment, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT local_id, record, captured_at, status, sync_status FROM pending_enrollments ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("ListPending: query: %w", err)
	}
	defer rows.Close()

	entries := make([]types.PendingEnrollment, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("ListPending: scan row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPending: rows iteration: %w", err)
	}

	return entries, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (types.PendingEnrollment, error) {
	var (
		entry      types.PendingEnrollment
		record     string
		capturedAt string
	)
	if err := sc.Scan(&entry.LocalID, &record, &capturedAt, &entry.Status, &entry.SyncStatus); err != nil {
		return types.PendingEnrollment{}, err
	}
	if err := json.Unmarshal([]byte(record), &entry.Record); err != nil {
		return types.PendingEnrollment{}, fmt.Errorf("decode record: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, capturedAt)
	if err != nil {
		return types.PendingEnrollment{}, fmt.Errorf("decode captured_at: %w", err)
	}
	entry.CapturedAt = t
	return entry, nil
}
