// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: SQLite file path or Postgres connection string (default: db/catalogo.db)
  - DatabaseType: sqlite, sqlite3, postgres or pgx (default: sqlite)
  - StaticDir: Directory holding index.html and other front-end files (default: public)
  - VerboseErrors: Attach a stack trace to 500 responses
  - LogFormat: auto, text or json (auto picks text on a terminal)
  - RateLimitRPS / RateLimitBurst: Per-client token bucket, disabled when RPS is 0

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-static           Static directory
	-verbose-errors   true/false
	-log-format       auto, text, json
	-rate-rps         Requests per second per client
	-rate-burst       Burst per client
	-env-file         Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	STATIC_DIR       → -static
	VERBOSE_ERRORS   → -verbose-errors
	LOG_FORMAT       → -log-format
	RATE_LIMIT_RPS   → -rate-rps
	RATE_LIMIT_BURST → -rate-burst

CLI flags take precedence over environment variables. The dotenv file is
loaded with godotenv before the environment is read and never overrides a
variable that is already set; a missing file is ignored.

# Validation

ParseFlags returns an error for malformed numbers or booleans, a port outside
1-65535, an unknown database type or log format, and a negative rate.
*/
package cliparse
