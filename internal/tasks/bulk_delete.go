package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/ctms-cli/internal/services"
	"github.com/desertthunder/ctms-cli/internal/shared"
	"golang.org/x/time/rate"
)

// DeleteOpts contains configuration for bulk contact deletions.
type DeleteOpts struct {
	// RPS caps requests per second. Zero or negative leaves deletion
	// unthrottled.
	RPS float64
}

// DeleteResult is the per-email result of the bulk-delete workflow.
type DeleteResult struct {
	Email      string
	Outcome    Outcome
	Identities []services.IdentityRecord
	Err        error
}

// DeleteContacts removes every listed contact, sequentially and in input
// order, returning one result per email.
//
// As with updates, 404 is data ("not in CTMS"), not an error, and any
// other failure is reported per email without stopping the loop.
func (e *ContactEngine) DeleteContacts(ctx context.Context, progress chan<- ProgressUpdate, emails []string, opts DeleteOpts) ([]DeleteResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: CTMS client not initialized", shared.ErrNotAuthenticated)
	}

	var limiter *rate.Limiter
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}

	total := len(emails)
	results := make([]DeleteResult, 0, total)

	for i, email := range emails {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return results, err
			}
		}

		e.sendProgress(progress, deleteContactUpdate(i+1, total, email))

		result := DeleteResult{Email: email}
		identities, err := e.client.DeleteContact(ctx, email)
		switch {
		case errors.Is(err, shared.ErrContactNotFound):
			result.Outcome = OutcomeNotFound
		case err != nil:
			result.Outcome = OutcomeError
			result.Err = err
		default:
			result.Outcome = OutcomeSuccess
			result.Identities = identities
		}

		results = append(results, result)
	}

	return results, nil
}
