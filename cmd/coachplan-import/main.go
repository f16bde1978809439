package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/coachplan/internal/config"
	"github.com/claude/coachplan/internal/importer"
	"github.com/claude/coachplan/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	programPath := flag.String("path", "", "path to program YAML file (required)")
	userID := flag.Int("user", 1, "user ID to own the program")
	dryRun := flag.Bool("dry-run", false, "validate and report without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *programPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: coachplan-import -config config.yaml -path program.yaml [-user 1] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Run import
	imp := importer.New(db, log, *dryRun)
	programID, err := imp.Import(ctx, *programPath, *userID)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import complete", "program_id", programID)
}
