// Package main is the entrypoint of the attendance tracker CLI.
//
// Wiring: config -> logger -> storage backend -> entry repository -> store
// -> cobra commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alem-hub/attendance-tracker/config"
	"github.com/alem-hub/attendance-tracker/internal/application/tracker"
	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
	"github.com/alem-hub/attendance-tracker/internal/interface/cli"
	"github.com/alem-hub/attendance-tracker/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}

// run returns an error only to signal a non-zero exit; cobra has already
// printed it.
func run(ctx context.Context, args []string) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return err
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	defer log.Sync()

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORAGE
	// ─────────────────────────────────────────────────────────────────────────
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Error("failed to open storage", logger.Backend(cfg.Storage.Backend), logger.Err(err))
		fmt.Fprintf(os.Stderr, "failed to open %s storage: %v\n", cfg.Storage.Backend, err)
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("failed to close storage", logger.Err(err))
		}
	}()

	repo := persistence.NewEntryRepository(backend, cfg.Storage.EntryName)
	log.Debug("storage ready", logger.Backend(backend.Name()), logger.Entry(repo.EntryName()))

	// ─────────────────────────────────────────────────────────────────────────
	// 4. STORE
	// ─────────────────────────────────────────────────────────────────────────
	policy, err := attendance.NewPolicy(cfg.Policy.ThresholdPercent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid policy: %v\n", err)
		return err
	}

	opts := []tracker.Option{
		tracker.WithLogger(log),
		tracker.WithPolicy(policy),
		tracker.WithWriteAttempts(cfg.Storage.WriteAttempts),
	}
	if cfg.Storage.RollbackOnWriteFailure {
		opts = append(opts, tracker.WithRollbackOnWriteFailure())
	}
	store := tracker.New(repo, opts...)

	// ─────────────────────────────────────────────────────────────────────────
	// 5. COMMANDS
	// ─────────────────────────────────────────────────────────────────────────
	root := cli.NewRootCommand(&cli.App{Store: store, Log: log})
	root.SetArgs(args)
	return root.ExecuteContext(logger.WithContext(ctx, log))
}

func setupLogger(cfg *config.Config) *logger.Logger {
	level := logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		level = logger.LevelDebug
	}

	return logger.New(logger.Options{
		Output:    os.Stderr,
		Level:     level,
		Format:    cfg.Observability.LogFormat,
		AddCaller: cfg.App.Debug,
	}).With(logger.String("app", cfg.App.Name))
}
