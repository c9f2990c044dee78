// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, s *Store) error {
	for _, stmt := range SplitStatements(Schema(s.dialect)) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Schema returns the DDL for the given dialect.
func Schema(d Dialect) string {
	if d == DialectPostgres {
		return postgresSchema
	}
	return sqliteSchema
}

// SplitStatements splits a DDL script on ';', dropping blank statements.
func SplitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// ExistingTables reports which of the named tables exist in the database.
func (s *Store) ExistingTables(ctx context.Context, names ...string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	marks := make([]string, len(names))
	args := make([]any, len(names))
	for i, n := range names {
		marks[i] = fmt.Sprintf("$%d", i+1)
		args[i] = n
	}
	in := strings.Join(marks, ", ")

	query := "SELECT name FROM sqlite_master WHERE type = 'table' AND name IN (" + in + ") ORDER BY name"
	if s.dialect == DialectPostgres {
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name IN (" + in + ") ORDER BY table_name"
	}

	rows, err := s.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		found = append(found, name)
	}
	return found, rows.Err()
}

const sqliteSchema = `
-- States
CREATE TABLE IF NOT EXISTS estado (
    id_estado INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    numero_habitantes INTEGER NOT NULL CHECK (numero_habitantes >= 0),
    capital TEXT NOT NULL
);

-- Municipalities
CREATE TABLE IF NOT EXISTS municipio (
    id_municipio INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    tipo_zona TEXT NOT NULL CHECK (tipo_zona IN ('Urbana', 'Rural')),
    numero_habitantes INTEGER NOT NULL CHECK (numero_habitantes >= 1),
    pueblo_magico INTEGER NOT NULL DEFAULT 0 CHECK (pueblo_magico IN (0, 1)),
    tipo TEXT NOT NULL CHECK (tipo IN ('Desierto', 'Playa', 'Ciudad', 'Montaña')),
    id_estado INTEGER NOT NULL REFERENCES estado(id_estado) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_municipio_id_estado ON municipio(id_estado);
`

const postgresSchema = `
-- States
CREATE TABLE IF NOT EXISTS estado (
    id_estado BIGSERIAL PRIMARY KEY,
    nombre TEXT NOT NULL,
    numero_habitantes BIGINT NOT NULL CHECK (numero_habitantes >= 0),
    capital TEXT NOT NULL
);

-- Municipalities
CREATE TABLE IF NOT EXISTS municipio (
    id_municipio BIGSERIAL PRIMARY KEY,
    nombre TEXT NOT NULL,
    tipo_zona TEXT NOT NULL CHECK (tipo_zona IN ('Urbana', 'Rural')),
    numero_habitantes BIGINT NOT NULL CHECK (numero_habitantes >= 1),
    pueblo_magico BOOLEAN NOT NULL DEFAULT FALSE,
    tipo TEXT NOT NULL CHECK (tipo IN ('Desierto', 'Playa', 'Ciudad', 'Montaña')),
    id_estado BIGINT NOT NULL REFERENCES estado(id_estado) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_municipio_id_estado ON municipio(id_estado);
`
