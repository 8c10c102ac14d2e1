package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/heartx/internal/domain"
	"github.com/ashureev/heartx/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL lets history reads proceed while the recorder is writing.
	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS commands (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		input TEXT,
		command TEXT,
		output TEXT,
		type TEXT,
		mode TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_commands_timestamp ON commands(timestamp);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AppendCommand inserts one record, retrying briefly when another writer
// holds the database lock.
func (s *SQLiteStore) AppendCommand(ctx context.Context, record domain.CommandRecord) error {
	output := record.Output
	if output == nil {
		output = []string{}
	}
	outputJSON, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	query := `
	INSERT INTO commands (id, timestamp, input, command, output, type, mode)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	return shared.RetryOnConflict(ctx, shared.DefaultRetry, func() error {
		_, err := s.db.ExecContext(ctx, query,
			record.ID, record.Timestamp, record.Input, record.Command,
			string(outputJSON), string(record.Type), record.Mode,
		)
		if err != nil {
			return fmt.Errorf("insert command %s: %w", record.ID, err)
		}
		return nil
	})
}

// ListCommands returns up to limit records, most recent first.
func (s *SQLiteStore) ListCommands(ctx context.Context, limit int) ([]domain.CommandRecord, error) {
	if limit <= 0 {
		return []domain.CommandRecord{}, nil
	}

	query := `
		SELECT id, timestamp, input, command, output, type, mode
		FROM commands ORDER BY timestamp DESC, rowid DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close command rows", "error", closeErr)
		}
	}()

	records := make([]domain.CommandRecord, 0, min(limit, 64))
	for rows.Next() {
		var rec domain.CommandRecord
		var ts, input, command, outputJSON, resultType, mode sql.NullString

		if err := rows.Scan(&rec.ID, &ts, &input, &command, &outputJSON, &resultType, &mode); err != nil {
			return nil, fmt.Errorf("scan command row: %w", err)
		}

		rec.Timestamp = ts.String
		rec.Input = input.String
		rec.Command = command.String
		rec.Type = domain.ResultType(resultType.String)
		rec.Mode = mode.String
		rec.Output = []string{}
		if outputJSON.Valid && outputJSON.String != "" {
			if err := json.Unmarshal([]byte(outputJSON.String), &rec.Output); err != nil {
				return nil, fmt.Errorf("decode output for %s: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commands: %w", err)
	}

	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

var _ Repository = (*SQLiteStore)(nil)
