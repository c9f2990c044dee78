// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the catalogo API server.

Catalogo keeps a catalogue of Mexican states (estados) and their
municipalities (municipios). A municipality never declares more inhabitants
than its state at the time it is written.

# Starting the Server

With no configuration the server listens on port 3000 and stores data in
db/catalogo.db:

	go run .

Or with flags:

	go run . serve -p 3001 -t postgres -d "postgres://..."

Create the tables without serving:

	go run . init-db

# Configuration

Settings come from flags, then the environment, then a .env file:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - DATABASE_TYPE (-t): sqlite, sqlite3, postgres or pgx (default: sqlite)
  - STATIC_DIR (-static): Front-end directory (default: public, which ships index.html)
  - VERBOSE_ERRORS (-verbose-errors): Stack traces in 500 responses, debug logs
  - LOG_FORMAT (-log-format): auto, text or json
  - RATE_LIMIT_RPS (-rate-rps): Requests per second per client, 0 disables
  - RATE_LIMIT_BURST (-rate-burst): Burst per client (default: 20)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (estados, municipios)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, rate limiting, JSON helpers
  - models: Request/response types
  - db: Store over database/sql, schema creation
  - logging: slog handler selection
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
