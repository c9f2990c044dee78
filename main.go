package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/catalogo/cliparse"
	"github.com/danielhkuo/catalogo/db"
	"github.com/danielhkuo/catalogo/logging"
	"github.com/danielhkuo/catalogo/middleware"
	"github.com/danielhkuo/catalogo/router"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:                "serve [flags]",
		Short:              "Run the HTTP API (default)",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runServe,
	}

	// Without a subcommand the root behaves like serve
	rootCmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Catalogo - CRUD API for Mexican states and municipalities",
		Long: `Catalogo keeps a catalogue of estados and their municipios in SQLite or
PostgreSQL and serves it over a JSON HTTP API.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runServe,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(&cobra.Command{
		Use:                "init-db [flags]",
		Short:              "Create the tables and check they exist",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runInitDB,
	})

	return rootCmd
}

// parseConfig parses flags and installs the process logger.
// help is true when the user only asked for usage.
func parseConfig(args []string) (cfg cliparse.Config, help bool, err error) {
	cfg, err = cliparse.ParseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return cfg, true, nil
	}
	if err != nil {
		return cfg, false, err
	}

	level := slog.LevelInfo
	if cfg.VerboseErrors {
		level = slog.LevelDebug
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.LogFormat, level))

	return cfg, false, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, help, err := parseConfig(args)
	if err != nil || help {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := db.CreateSchema(ctx, store); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType, "dialect", store.Dialect().String())

	var handler http.Handler = middleware.CORS(router.NewRouter(store, cfg))
	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter.StartJanitor(ctx, 2*time.Minute)
		handler = limiter.Middleware(handler)
		slog.Info("Rate limiting enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.Port))
	if errors.Is(err, syscall.EADDRINUSE) {
		printPortInUse(cmd.ErrOrStderr(), cfg.Port)
		return fmt.Errorf("port %d already in use", cfg.Port)
	}
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(ln)
	}()
	slog.Info("Listening", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	slog.Info("Server closed", "error", err)
	return err
}

func printPortInUse(w io.Writer, port int) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(w)
	red.Fprintf(w, "Error: port %d is already in use.\n", port)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintf(w, "1. Stop the process listening on %d:\n", port)
	yellow.Fprintf(w, "   lsof -i :%d\n", port)
	fmt.Fprintln(w, "2. Use another port:")
	yellow.Fprintf(w, "   PORT=%d catalogo\n", port+1)
	yellow.Fprintf(w, "   catalogo -p %d\n", port+1)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, help, err := parseConfig(args)
	if err != nil || help {
		return err
	}

	out := cmd.OutOrStdout()
	ok := color.New(color.FgGreen).Sprint("✓")
	ctx := cmd.Context()

	fmt.Fprintf(out, "Initializing %s database...\n", cfg.DatabaseType)

	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Fprintln(out, "Creating tables...")
	if err := db.CreateSchema(ctx, store); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	fmt.Fprintf(out, "%s Tables created\n", ok)

	want := []string{"estado", "municipio"}
	found, err := store.ExistingTables(ctx, want...)
	if err != nil {
		return err
	}
	if len(found) != len(want) {
		color.New(color.FgYellow).Fprintf(out, "! Some tables were not found (found %v)\n", found)
		return errors.New("database verification failed")
	}
	fmt.Fprintf(out, "%s Tables verified: %s, %s\n", ok, found[0], found[1])

	fmt.Fprintln(out)
	if store.Dialect() == db.DialectSQLite {
		fmt.Fprintf(out, "%s Database initialized: %s\n", ok, cfg.DatabaseURL)
	} else {
		fmt.Fprintf(out, "%s Database initialized\n", ok)
	}
	return nil
}
