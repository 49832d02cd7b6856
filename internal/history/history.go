// Package history reads command records from Atuin's SQLite database.
//
// Atuin stores one row per invocation with nanosecond timestamps; rows
// soft-deleted through sync carry a deleted_at marker and are skipped.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fragmede/fundcli/internal/contract"
	"github.com/fragmede/fundcli/schema"
)

const baseQuery = `
	SELECT id, command, timestamp, duration, exit, cwd, hostname
	FROM history
	WHERE deleted_at IS NULL`

// Store reads an Atuin history.db file. It implements contract.HistoryStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the Atuin database read-only.
func NewStore(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("atuin database not found at %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Query returns records within the period, newest first. An empty
// hostname matches all hosts.
func (s *Store) Query(ctx context.Context, period schema.TimePeriod, hostname string) ([]schema.HistoryEntry, error) {
	query := baseQuery
	var args []any

	if start, ok := contract.PeriodStart(period, time.Now()); ok {
		query += " AND timestamp >= ?"
		args = append(args, start.UnixNano())
	}
	if hostname != "" {
		query += " AND hostname LIKE ?"
		args = append(args, "%"+hostname+"%")
	}
	query += " ORDER BY timestamp DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schema.HistoryEntry
	for rows.Next() {
		var entry schema.HistoryEntry
		var timestamp int64
		if err := rows.Scan(&entry.ID, &entry.Command, &timestamp, &entry.Duration,
			&entry.ExitCode, &entry.Cwd, &entry.Hostname); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entry.Timestamp = time.Unix(0, timestamp)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stats summarizes the full store regardless of period.
func (s *Store) Stats(ctx context.Context) (schema.HistoryStats, error) {
	var stats schema.HistoryStats
	var oldest, newest int64

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MIN(timestamp), 0), COALESCE(MAX(timestamp), 0)
		FROM history
		WHERE deleted_at IS NULL`)
	if err := row.Scan(&stats.TotalCommands, &oldest, &newest); err != nil {
		return stats, fmt.Errorf("failed to query history stats: %w", err)
	}

	if oldest > 0 {
		stats.Oldest = time.Unix(0, oldest)
	}
	if newest > 0 {
		stats.Newest = time.Unix(0, newest)
	}
	return stats, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}
