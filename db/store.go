// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	_ "github.com/mattn/go-sqlite3"    // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"             // registers "sqlite" (pure go)
)

// ErrNotFound is returned when a keyed write or lookup matched no row.
var ErrNotFound = errors.New("row not found")

// Dialect selects placeholder syntax and how written rows are read back.
type Dialect int

const (
	// DialectSQLite uses ? markers and has rows re-read after writes.
	DialectSQLite Dialect = iota
	// DialectPostgres uses $N markers and native RETURNING.
	DialectPostgres
)

func (d Dialect) String() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

type driverInfo struct {
	name    string
	dialect Dialect
}

// DATABASE_TYPE -> database/sql driver
var drivers = map[string]driverInfo{
	"sqlite":   {name: "sqlite", dialect: DialectSQLite},
	"sqlite3":  {name: "sqlite3", dialect: DialectSQLite},
	"postgres": {name: "postgres", dialect: DialectPostgres},
	"pgx":      {name: "pgx", dialect: DialectPostgres},
}

// Result carries what a write reported back from the store.
type Result struct {
	RowCount     int64
	LastInsertID int64
}

// Store is the shared handle every handler goes through. It owns the
// *sql.DB and hides the differences between the SQLite and Postgres dialects.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an already opened database.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open connects to the database of the given type and verifies the connection.
// SQLite databases are limited to a single connection with foreign keys on.
func Open(ctx context.Context, databaseType, url string) (*Store, error) {
	info, ok := drivers[strings.ToLower(databaseType)]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	if info.dialect == DialectSQLite {
		if err := ensureDir(url); err != nil {
			return nil, err
		}
		url = sqliteDSN(info.name, url)
	}

	conn, err := sql.Open(info.name, url)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", info.name, err)
	}

	if info.dialect == DialectSQLite {
		// One session shared by all requests; also keeps :memory: databases alive.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", info.name, err)
	}

	return New(conn, info.dialect), nil
}

// sqliteDSN turns foreign keys on for every connection the driver opens.
func sqliteDSN(driver, url string) string {
	param := "_pragma=foreign_keys(1)"
	if driver == "sqlite3" {
		param = "_foreign_keys=1"
	}
	if strings.Contains(url, "?") {
		return url + "&" + param
	}
	return url + "?" + param
}

func ensureDir(path string) error {
	path, _, _ = strings.Cut(path, "?")
	if path == "" || strings.HasPrefix(path, ":memory:") || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create database dir: %w", err)
	}
	return nil
}

// DB exposes the underlying pool (metrics, tests).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) Close() error { return s.db.Close() }

// Query runs a SELECT written with $N placeholders.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q, a, err := s.Rebind(query, args)
	if err != nil {
		return nil, err
	}
	return s.db.QueryContext(ctx, q, a...)
}

// ScanRow runs a single-row SELECT written with $N placeholders and scans it
// into dest. sql.ErrNoRows is reported as ErrNotFound.
func (s *Store) ScanRow(ctx context.Context, query string, args []any, dest ...any) error {
	q, a, err := s.Rebind(query, args)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, q, a...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Exec runs a statement that returns no rows (DELETE and friends).
func (s *Store) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	q, a, err := s.Rebind(query, args)
	if err != nil {
		return Result{}, err
	}
	res, err := s.db.ExecContext(ctx, q, a...)
	if err != nil {
		return Result{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("rows affected: %w", err)
	}
	out := Result{RowCount: n}
	if s.dialect == DialectSQLite {
		// Postgres drivers do not implement LastInsertId.
		if id, err := res.LastInsertId(); err == nil {
			out.LastInsertID = id
		}
	}
	return out, nil
}

// InsertReturning inserts values into t's columns and scans the stored row
// (key first, then t.Columns) into dest.
func (s *Store) InsertReturning(ctx context.Context, t Table, values []any, dest ...any) (Result, error) {
	if len(values) != len(t.Columns) {
		return Result{}, fmt.Errorf("insert %s: %d values for %d columns", t.Name, len(values), len(t.Columns))
	}

	if s.dialect == DialectPostgres {
		query := t.insertSQL() + " RETURNING " + t.selectList()
		if err := s.db.QueryRowContext(ctx, query, values...).Scan(dest...); err != nil {
			return Result{}, fmt.Errorf("insert %s: %w", t.Name, err)
		}
		return Result{RowCount: 1}, nil
	}

	res, err := s.Exec(ctx, t.insertSQL(), values...)
	if err != nil {
		return Result{}, fmt.Errorf("insert %s: %w", t.Name, err)
	}
	if res.LastInsertID == 0 {
		return res, fmt.Errorf("insert %s: store did not report a new id", t.Name)
	}
	if err := s.Get(ctx, t, res.LastInsertID, dest...); err != nil {
		return res, fmt.Errorf("reload %s: %w", t.Name, err)
	}
	return res, nil
}

// UpdateReturning overwrites t's columns for the row identified by key and
// scans the updated row into dest. ErrNotFound means no row matched.
func (s *Store) UpdateReturning(ctx context.Context, t Table, key any, values []any, dest ...any) (Result, error) {
	if len(values) != len(t.Columns) {
		return Result{}, fmt.Errorf("update %s: %d values for %d columns", t.Name, len(values), len(t.Columns))
	}
	args := append(append(make([]any, 0, len(values)+1), values...), key)

	if s.dialect == DialectPostgres {
		query := t.updateSQL() + " RETURNING " + t.selectList()
		err := s.db.QueryRowContext(ctx, query, args...).Scan(dest...)
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrNotFound
		}
		if err != nil {
			return Result{}, fmt.Errorf("update %s: %w", t.Name, err)
		}
		return Result{RowCount: 1}, nil
	}

	res, err := s.Exec(ctx, t.updateSQL(), args...)
	if err != nil {
		return Result{}, fmt.Errorf("update %s: %w", t.Name, err)
	}
	if res.RowCount == 0 {
		return res, ErrNotFound
	}
	if err := s.Get(ctx, t, key, dest...); err != nil {
		return res, fmt.Errorf("reload %s: %w", t.Name, err)
	}
	return res, nil
}

// Get scans the row of t identified by key into dest.
func (s *Store) Get(ctx context.Context, t Table, key any, dest ...any) error {
	return s.ScanRow(ctx, t.selectByKeySQL(), []any{key}, dest...)
}

// Delete removes the row of t identified by key. ErrNotFound means no row matched.
func (s *Store) Delete(ctx context.Context, t Table, key any) error {
	res, err := s.Exec(ctx, t.deleteSQL(), key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.Name, err)
	}
	if res.RowCount == 0 {
		return ErrNotFound
	}
	return nil
}
