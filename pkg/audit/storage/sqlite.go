package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"verity-hq/scrivener/pkg/audit"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a SQLite storage backend, initializing the
// schema and enabling WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("sqlite audit storage opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize applies pragmas and creates the schema.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return audit.NewStorageError("sqlite", "pragma", err)
		}
	}
	if s.config.BusyTimeout > 0 {
		pragma := fmt.Sprintf("PRAGMA busy_timeout=%d", s.config.BusyTimeout.Milliseconds())
		if _, err := s.db.Exec(pragma); err != nil {
			return audit.NewStorageError("sqlite", "pragma", err)
		}
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return audit.NewStorageError("sqlite", "schema", err)
	}
	return nil
}

// Store persists a bundle.
func (s *SQLiteStorage) Store(ctx context.Context, bundle *audit.Bundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_bundles
			(id, run_id, policy_id, firm_name, generated_by, generated_at, content_hash, bundle_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bundle.ID,
		bundle.RunID,
		bundle.PolicyID,
		bundle.FirmName,
		bundle.GeneratedBy,
		bundle.GeneratedAt.UTC(),
		bundle.ContentHash,
		string(data),
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query retrieves bundles matching the filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Bundle, error) {
	where, args := buildWhere(query)

	sqlQuery := "SELECT bundle_json FROM audit_bundles" + where + " ORDER BY generated_at DESC"
	if query != nil && query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d OFFSET %d", query.Limit, query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	bundles := []*audit.Bundle{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}
		var b audit.Bundle
		if err := json.Unmarshal([]byte(data), &b); err != nil {
			return nil, audit.NewStorageError("sqlite", "unmarshal", err)
		}
		bundles = append(bundles, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}

	return bundles, nil
}

// Count returns the number of bundles matching the filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	where, args := buildWhere(query)

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_bundles"+where, args...).Scan(&count)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes bundles matching the filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *audit.Query) (int64, error) {
	where, args := buildWhere(query)

	result, err := s.db.ExecContext(ctx, "DELETE FROM audit_bundles"+where, args...)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete", err)
	}

	s.logger.Debug("audit bundles deleted", "count", deleted)
	return deleted, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return audit.NewStorageError("sqlite", "close", err)
	}
	return nil
}

// buildWhere assembles the WHERE clause and arguments for a query.
func buildWhere(query *audit.Query) (string, []interface{}) {
	if query == nil {
		return "", nil
	}

	var clauses []string
	var args []interface{}

	if query.Start != nil {
		clauses = append(clauses, "generated_at >= ?")
		args = append(args, query.Start.UTC())
	}
	if query.End != nil {
		clauses = append(clauses, "generated_at <= ?")
		args = append(args, query.End.UTC())
	}
	if query.ID != "" {
		clauses = append(clauses, "id = ?")
		args = append(args, query.ID)
	}
	if query.RunID != "" {
		clauses = append(clauses, "run_id = ?")
		args = append(args, query.RunID)
	}
	if query.PolicyID != "" {
		clauses = append(clauses, "policy_id = ?")
		args = append(args, query.PolicyID)
	}
	if query.FirmName != "" {
		clauses = append(clauses, "firm_name = ?")
		args = append(args, query.FirmName)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
