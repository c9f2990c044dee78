// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the persistence layer: schema creation and the Store that every
handler shares.

# Opening a Store

	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

Supported database types and the driver each one uses:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - sqlite3: github.com/mattn/go-sqlite3 (cgo)
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

SQLite stores run on a single connection with foreign keys enabled.

# Queries

Statements are always written with Postgres style $N placeholders. Rebind
turns them into ? markers for SQLite:

	rows, err := store.Query(ctx, "SELECT nombre FROM estado WHERE id_estado = $1", id)

# Writes that return the row

InsertReturning and UpdateReturning take a Table descriptor instead of SQL text.
Postgres answers with RETURNING; SQLite runs the write and then reads the row
back by its key (the new id for inserts, the explicit key for updates):

	var e models.Estado
	_, err := store.InsertReturning(ctx, db.Estados,
		[]any{"Jalisco", int64(8000000), "Guadalajara"},
		&e.ID, &e.Nombre, &e.NumeroHabitantes, &e.Capital)

UpdateReturning and Delete return ErrNotFound when no row matched.

# Schema Creation

CreateSchema initializes both tables:

	if err := db.CreateSchema(ctx, store); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

	estado 1──* municipio (municipio.id_estado, ON DELETE CASCADE)
*/
package db
