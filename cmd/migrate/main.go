package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bigledger/backend/internal/infrastructure/config"
	"github.com/bigledger/backend/internal/infrastructure/logger"
	"github.com/bigledger/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var usage = `Ledger schema migrator

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up               Apply all pending migrations
  down             Roll back all migrations
  step <n>         Apply n migrations (negative rolls back)
  version          Show current schema version
  force <version>  Overwrite the recorded version (recovery only)

Flags:
  -path string       Migrations directory (default: ./migrations)
  -log-level string  Log level (default: info)
`

func main() {
	var (
		path     string
		logLevel string
	)
	flag.StringVar(&path, "path", "migrations", "migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(path, flag.Args(), log); err != nil {
		log.Fatal("Migration command failed", zap.Error(err))
	}
}

func run(path string, args []string, log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, absPath, log)
	if err != nil {
		return err
	}
	defer m.Close()

	command, rest := args[0], args[1:]
	log.Info("Running migration command",
		zap.String("command", command),
		zap.String("path", absPath),
	)

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(rest, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		return nil
	case "force":
		version, err := intArg(rest, "version")
		if err != nil {
			return err
		}
		log.Warn("Overwriting recorded schema version", zap.Int("version", version))
		return m.Force(version)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string, name string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New(name + " required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[0])
	}
	return n, nil
}
