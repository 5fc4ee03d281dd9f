package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/desertthunder/ctms-cli/internal/formatter"
	"github.com/desertthunder/ctms-cli/internal/models"
	"github.com/desertthunder/ctms-cli/internal/shared"
	"github.com/desertthunder/ctms-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SubscriptionsUpdate bulk-patches newsletter subscriptions from a CSV file.
//
// One line is written to stdout per distinct email_id in the input, in
// first-seen order: either the contact's current subscribed slugs joined
// with ";", the literal 404 sentinel, or an ERROR annotation. Setup
// failures (credentials, token, CSV structure) abort before any
// per-contact output; per-contact failures never abort the loop.
func (r *Runner) SubscriptionsUpdate(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: path to a CSV file (or - for stdin)", shared.ErrMissingArgument)
	}

	if _, err := r.authenticate(ctx); err != nil {
		return err
	}

	var input io.Reader
	if path == "-" {
		input = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		input = file
	}

	set, err := tasks.ReadChanges(input)
	if err != nil {
		return err
	}

	r.logger.Info("updating subscriptions", "contacts", set.Len(), "file", path)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase.String())
		}
	}()

	startedAt := time.Now()
	results, err := r.engine.UpdateSubscriptions(ctx, progressCh, set)
	close(progressCh)
	completedAt := time.Now()

	if err != nil {
		return err
	}

	for _, result := range results {
		r.writePlain("%s\n", formatter.UpdateLine(result))
	}

	journalPath := cmd.String("journal")
	if journalPath == "" {
		journalPath = r.config.Journal.Path
	}
	if journalPath != "" {
		if err := r.recordRun(journalPath, path, startedAt, completedAt, results); err != nil {
			// Journal trouble must not fail a run whose output is already written.
			r.logger.Warn("failed to record run in journal", "path", journalPath, "error", err)
		}
	}

	return nil
}

// recordRun persists one run and its per-contact outcomes to the journal.
func (r *Runner) recordRun(journalPath, csvPath string, startedAt, completedAt time.Time, results []tasks.UpdateResult) error {
	repo, db, err := r.openJournal(journalPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &models.Run{
		ID:          shared.GenerateID(),
		CSVPath:     csvPath,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}

	entries := make([]models.RunEntry, 0, len(results))
	for i, result := range results {
		switch result.Outcome {
		case tasks.OutcomeSuccess:
			run.Updated++
		case tasks.OutcomeNotFound:
			run.NotFound++
		default:
			run.Failed++
		}

		entries = append(entries, models.RunEntry{
			RunID:   run.ID,
			Seq:     i + 1,
			EmailID: result.EmailID,
			Outcome: result.Outcome.String(),
			Detail:  formatter.Detail(result),
		})
	}

	if err := repo.CreateRun(run, entries); err != nil {
		return err
	}

	r.logger.Info("run recorded", "run_id", run.ID, "updated", run.Updated, "not_found", run.NotFound, "failed", run.Failed)
	return nil
}
