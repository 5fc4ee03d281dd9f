package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/ctms-cli/internal/formatter"
	"github.com/desertthunder/ctms-cli/internal/shared"
	"github.com/desertthunder/ctms-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ContactsDelete removes contacts by primary email, one DELETE per email.
//
// 404s print a "not found in CTMS" line on stdout; any other failure is
// written to stderr and the loop continues.
func (r *Runner) ContactsDelete(ctx context.Context, cmd *cli.Command) error {
	var emails []string

	if path := cmd.String("email-file"); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open email file: %w", err)
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				emails = append(emails, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read email file: %w", err)
		}
	}

	if email := cmd.String("email"); email != "" {
		emails = append(emails, email)
	}

	if len(emails) == 0 {
		return fmt.Errorf("%w: --email or --email-file", shared.ErrMissingArgument)
	}

	rps := cmd.Float("rps")
	if rps < 0 {
		return fmt.Errorf("%w: --rps must be non-negative", shared.ErrInvalidArgument)
	}

	if _, err := r.authenticate(ctx); err != nil {
		return err
	}

	r.logger.Info("deleting contacts", "count", len(emails))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase.String())
		}
	}()

	results, err := r.engine.DeleteContacts(ctx, progressCh, emails, tasks.DeleteOpts{RPS: rps})
	close(progressCh)

	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Outcome == tasks.OutcomeError {
			r.writeError("%s\n", formatter.DeleteLine(result))
			continue
		}
		r.writePlain("%s\n", formatter.DeleteLine(result))
	}

	return nil
}
