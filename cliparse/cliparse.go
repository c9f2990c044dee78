package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	StaticDir      string
	VerboseErrors  bool
	LogFormat      string
	RateLimitRPS   float64
	RateLimitBurst int
}

const (
	DefaultPort           = 3000
	DefaultDatabaseURL    = "db/catalogo.db"
	DefaultDatabaseType   = "sqlite"
	DefaultStaticDir      = "public"
	DefaultLogFormat      = "auto"
	DefaultRateLimitBurst = 20
)

var (
	databaseTypes = []string{"sqlite", "sqlite3", "postgres", "pgx"}
	logFormats    = []string{"auto", "text", "json"}
)

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string
	var verbose string

	fs := flag.NewFlagSet("catalogo", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, sqlite3, postgres or pgx)")
	fs.StringVar(&cfg.StaticDir, "static", "", "Directory served for the front-end")
	fs.StringVar(&verbose, "verbose-errors", "", "Include stack traces in 500 responses (true/false)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (auto, text or json)")
	fs.Float64Var(&cfg.RateLimitRPS, "rate-rps", 0, "Requests per second per client, 0 disables")
	fs.IntVar(&cfg.RateLimitBurst, "rate-burst", 0, "Burst size per client")
	fs.StringVar(&envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Values already in the environment win over the file
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", DefaultDatabaseURL)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", DefaultDatabaseType)
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if !slices.Contains(databaseTypes, cfg.DatabaseType) {
		return Config{}, fmt.Errorf("unsupported database type %q (use one of %s)", cfg.DatabaseType, strings.Join(databaseTypes, ", "))
	}

	if cfg.StaticDir == "" {
		cfg.StaticDir = envOr("STATIC_DIR", DefaultStaticDir)
	}

	if verbose == "" {
		verbose = os.Getenv("VERBOSE_ERRORS")
	}
	if verbose != "" {
		v, err := strconv.ParseBool(verbose)
		if err != nil {
			return Config{}, errors.New("invalid VERBOSE_ERRORS value")
		}
		cfg.VerboseErrors = v
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = envOr("LOG_FORMAT", DefaultLogFormat)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return Config{}, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}

	if cfg.RateLimitRPS == 0 {
		if s := os.Getenv("RATE_LIMIT_RPS"); s != "" {
			rps, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT_RPS env variable")
			}
			cfg.RateLimitRPS = rps
		}
	}
	if cfg.RateLimitRPS < 0 {
		return Config{}, errors.New("rate limit must not be negative")
	}

	if cfg.RateLimitBurst == 0 {
		if s := os.Getenv("RATE_LIMIT_BURST"); s != "" {
			burst, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT_BURST env variable")
			}
			cfg.RateLimitBurst = burst
		} else {
			cfg.RateLimitBurst = DefaultRateLimitBurst
		}
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
