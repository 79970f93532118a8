// Package sqlite implements store.Store on a local SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/hayato-coosy/kouseian/internal/store"
)

// ErrInvalidTable indicates a table name that is not a plain identifier.
var ErrInvalidTable = errors.New("invalid sqlite table name")

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Store keeps records in one table with an id primary key and the JSON
// document as text.
type Store struct {
	db    *sql.DB
	table string

	insertSQL string
	selectSQL string
	existsSQL string
}

// Open opens (creating if needed) the database at path and ensures the table
// exists. Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path, table string) (*Store, error) {
	if table == "" {
		table = store.DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	quoted := `"` + table + `"`
	s := &Store{
		db:        db,
		table:     table,
		insertSQL: `INSERT INTO ` + quoted + ` (id, data) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`,
		selectSQL: `SELECT data FROM ` + quoted + ` WHERE id = ?`,
		existsSQL: `SELECT 1 FROM ` + quoted + ` WHERE id = ?`,
	}

	create := `CREATE TABLE IF NOT EXISTS ` + quoted + ` (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(ctx, create); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	log.Debug().Str("path", path).Str("table", table).Msg("SQLite store ready")
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put implements store.Store.
func (s *Store) Put(ctx context.Context, rec store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, s.insertSQL, rec.ID, string(rec.Data))
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, id string) (store.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, s.selectSQL, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to read record: %w", err)
	}
	return store.Record{ID: id, Data: []byte(data)}, nil
}

// Exists implements store.Store.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, s.existsSQL, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check record: %w", err)
	}
	return true, nil
}
