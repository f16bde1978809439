package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/coachplan/internal/storage"
	"gopkg.in/yaml.v3"
)

// Importer reads program definition YAML files and creates the program,
// template, days and schedule in the database.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
}

// New creates a new Importer. With dryRun set, definitions are parsed and
// validated but nothing is written.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// ParseFile reads and validates a program definition from a YAML file.
func ParseFile(path string) (*ProgramSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var spec ProgramSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &spec, nil
}

// Import creates the program described by the YAML file at path for the given
// user and returns its id as a string.
func (imp *Importer) Import(ctx context.Context, path string, userID int) (string, error) {
	spec, err := ParseFile(path)
	if err != nil {
		return "", err
	}

	prog, tmpl, days, sched, err := spec.Materialize(userID)
	if err != nil {
		return "", err
	}

	imp.log.Info("program definition parsed",
		"title", prog.Title,
		"days", len(days),
		"weeks", sched.DurationWeeks,
		"start", sched.StartDate.String(),
	)

	if imp.dryRun {
		imp.log.Info("dry run: skipping insert")
		return prog.ID.String(), nil
	}

	if err := imp.db.CreateProgram(ctx, prog, tmpl, days, sched); err != nil {
		return "", fmt.Errorf("creating program: %w", err)
	}
	return prog.ID.String(), nil
}
