package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ctms-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes an example config.toml for editing.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("wrote %s\n", path)
	return nil
}

// SetupJournal creates the run journal database and applies migrations.
func (r *Runner) SetupJournal(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("db")
	if path == "" {
		path = r.config.Journal.Path
	}
	if path == "" {
		return fmt.Errorf("%w: --db or journal.path in config", shared.ErrMissingArgument)
	}

	_, db, err := r.openJournal(path)
	if err != nil {
		return err
	}
	defer db.Close()

	r.writePlain("journal initialized at %s\n", path)
	return nil
}
