package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// snapshotKeep is how many snapshots survive pruning.
const snapshotKeep = 10

// Snapshot is a stored copy of a document that passed validation.
type Snapshot struct {
	Document  *Document
	Version   string
	Source    string
	FetchedAt time.Time
}

// SnapshotStore keeps recent valid documents in a local SQLite database.
type SnapshotStore struct {
	db *sql.DB
}

// OpenSnapshotStore opens (or creates) the SQLite snapshot database at path.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSnapshotSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snapshot: init schema: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

func initSnapshotSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		version    TEXT NOT NULL,
		source     TEXT NOT NULL,
		document   TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Close releases the database handle.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save stores doc unless the latest snapshot already has the same version.
// It returns the document version.
func (s *SnapshotStore) Save(ctx context.Context, doc *Document, sourceName string) (string, error) {
	data, err := doc.Encode()
	if err != nil {
		return "", err
	}
	version, err := doc.Version()
	if err != nil {
		return "", err
	}

	var latest string
	err = s.db.QueryRowContext(ctx, `SELECT version FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&latest)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("snapshot: latest version: %w", err)
	}
	if latest == version {
		return version, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (version, source, document, fetched_at) VALUES (?, ?, ?, ?)`,
		version, sourceName, string(data), now,
	); err != nil {
		return "", fmt.Errorf("snapshot: insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		snapshotKeep,
	); err != nil {
		return "", fmt.Errorf("snapshot: prune: %w", err)
	}
	return version, nil
}

// Latest returns the most recent snapshot or ErrNoSnapshot.
func (s *SnapshotStore) Latest(ctx context.Context) (*Snapshot, error) {
	var (
		snap      Snapshot
		data      string
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT version, source, document, fetched_at FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&snap.Version, &snap.Source, &data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: latest: %w", err)
	}

	doc, err := Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	snap.Document = doc
	if snap.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt); err != nil {
		return nil, fmt.Errorf("snapshot: fetched_at: %w", err)
	}
	return &snap, nil
}

// Count returns the number of stored snapshots.
func (s *SnapshotStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("snapshot: count: %w", err)
	}
	return n, nil
}
