package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/heartmarshall/extrato-backend/internal/adapter/postgres"
	"github.com/heartmarshall/extrato-backend/internal/config"
)

// ImportOptions controls RunImport.
type ImportOptions struct {
	File   string
	DryRun bool
	Out    io.Writer
}

// RunImport loads one CSV file into the configured database through the
// same orchestrator the HTTP upload uses. With DryRun it only parses the
// file and reports what an import would do.
func RunImport(ctx context.Context, opts ImportOptions) error {
	if opts.File == "" {
		return fmt.Errorf("import: file is required")
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)

	f, err := os.Open(opts.File)
	if err != nil {
		return fmt.Errorf("import: open %s: %w", opts.File, err)
	}
	defer f.Close()

	pool, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	svc := newImporter(cfg, pool, logger, nil)
	logger.Info("import started", slog.String("file", opts.File), slog.Bool("dry_run", opts.DryRun))

	if opts.DryRun {
		preview, err := svc.Preview(ctx, f)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(opts.Out, "dry run: %d entries, %d contacts, %d new people\n",
			preview.EntryCount, preview.ContactCount, preview.NewPeopleCount)
		return err
	}

	res, err := svc.Import(ctx, f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(opts.Out, "imported %d entries, %d new people, %d orphaned entries\n",
		res.ImportedEntryCount, res.NewPeopleCount, res.OrphanedEntryCount)
	return err
}
