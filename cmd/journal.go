package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/ctms-cli/internal/formatter"
	"github.com/desertthunder/ctms-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// journalPath resolves the journal location from the --db flag or config.
func (r *Runner) journalPath(cmd *cli.Command) string {
	if path := cmd.String("db"); path != "" {
		return path
	}
	return r.config.Journal.Path
}

// JournalRuns lists recorded subscription-update runs.
func (r *Runner) JournalRuns(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openJournal(r.journalPath(cmd))
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := repo.ListRuns()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		r.writePlain("no runs recorded\n")
		return nil
	}

	for _, run := range runs {
		r.writePlain("%s  %s  contacts=%d updated=%d not_found=%d failed=%d  %s\n",
			run.ID,
			run.CSVPath,
			run.Contacts(),
			run.Updated,
			run.NotFound,
			run.Failed,
			run.CompletedAt.Format(time.RFC3339),
		)
	}

	return nil
}

// JournalShow prints the per-contact entries of one recorded run.
func (r *Runner) JournalShow(ctx context.Context, cmd *cli.Command) error {
	runID := cmd.StringArg("run-id")
	if runID == "" {
		return fmt.Errorf("%w: run id", shared.ErrMissingArgument)
	}

	repo, db, err := r.openJournal(r.journalPath(cmd))
	if err != nil {
		return err
	}
	defer db.Close()

	run, entries, err := repo.GetRun(runID)
	if err != nil {
		return err
	}

	if cmd.Bool("csv") {
		data, err := formatter.EntriesToCSV(entries)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	r.writePlain("run %s (%s): %d contacts, updated=%d not_found=%d failed=%d\n",
		run.ID, run.CSVPath, run.Contacts(), run.Updated, run.NotFound, run.Failed)
	for _, entry := range entries {
		r.writePlain("%4d  %s  %s  %s\n", entry.Seq, entry.EmailID, entry.Outcome, entry.Detail)
	}

	return nil
}
