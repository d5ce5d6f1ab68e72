// ABOUTME: SQLite implementation of the audit store using modernc.org/sqlite.
// ABOUTME: Creates the schema automatically and runs in WAL mode.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements AuditStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the audit database at the given path.
// Parent directories are created if needed. Use ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("audit store initialized", "path", path)
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS operations (
			id TEXT PRIMARY KEY,
			operation TEXT NOT NULL,
			software TEXT NOT NULL,
			ok INTEGER NOT NULL,
			error_code TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_operations_software
			ON operations(software, created_at);

		CREATE INDEX IF NOT EXISTS idx_operations_created
			ON operations(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordOperation inserts an audit entry. Assigns ID and CreatedAt when unset.
func (s *SQLiteStore) RecordOperation(ctx context.Context, e *OperationEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO operations (id, operation, software, ok, error_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Operation, e.Software, boolToInt(e.OK), e.ErrorCode, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting operation entry: %w", err)
	}
	return nil
}

// ListOperations returns audit entries matching the filter, newest first.
func (s *SQLiteStore) ListOperations(ctx context.Context, f OperationFilter) ([]*OperationEntry, error) {
	query := `SELECT id, operation, software, ok, error_code, created_at FROM operations`
	var conds []string
	var args []any

	if f.Software != "" {
		conds = append(conds, "software = ?")
		args = append(args, f.Software)
	}
	if f.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *f.Since)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying operations: %w", err)
	}
	defer rows.Close()

	var entries []*OperationEntry
	for rows.Next() {
		var e OperationEntry
		var okInt int
		if err := rows.Scan(&e.ID, &e.Operation, &e.Software, &okInt, &e.ErrorCode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning operation entry: %w", err)
		}
		e.OK = okInt != 0
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
