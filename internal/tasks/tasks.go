// package tasks implements the bulk contact workflows that drive the
// CTMS API: subscription updates from CSV input and bulk deletions.
//
// The core abstraction is ContactEngine, which dispatches one request per
// contact, strictly sequentially, and returns a typed result per contact.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/ctms-cli/internal/services"
	"github.com/desertthunder/ctms-cli/internal/shared"
)

// Outcome classifies the result of processing a single contact.
type Outcome int

const (
	OutcomeSuccess  Outcome = iota // request succeeded
	OutcomeNotFound                // API returned 404; expected, reported as data
	OutcomeError                   // any other failure; reported, does not stop the run
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	default:
		return ""
	}
}

// UpdateResult is the per-contact result of the subscription-update
// workflow.
//
// EmailID is the id from the input file. On success, ResponseID echoes
// the id from the PATCH response body and Subscribed lists the names of
// currently subscribed newsletters in the order the API returned them.
type UpdateResult struct {
	EmailID    string
	ResponseID string
	Outcome    Outcome
	Subscribed []string
	Err        error
}

// CTMSClient defines the API operations the engine depends on.
// The concrete implementation is [services.CTMSService].
type CTMSClient interface {
	UpdateNewsletters(ctx context.Context, emailID string, newsletters []services.NewsletterSubscription) (*services.PatchResponse, error)
	DeleteContact(ctx context.Context, primaryEmail string) ([]services.IdentityRecord, error)
}

// ContactEngine runs bulk contact operations against an authenticated
// CTMS client.
type ContactEngine struct {
	client CTMSClient
}

// NewContactEngine creates a new ContactEngine with the provided client.
func NewContactEngine(client CTMSClient) *ContactEngine {
	return &ContactEngine{client: client}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never blocks dispatch.
func (e *ContactEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// UpdateSubscriptions PATCHes every contact in the change set, one at a
// time in aggregation order, and returns one result per contact.
//
// Failures are contained per contact: a network error, a non-200/404
// status or a malformed success body becomes an OutcomeError result and
// the loop moves to the next contact. Nothing is retried.
func (e *ContactEngine) UpdateSubscriptions(ctx context.Context, progress chan<- ProgressUpdate, set *ChangeSet) ([]UpdateResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: CTMS client not initialized", shared.ErrNotAuthenticated)
	}

	total := set.Len()
	results := make([]UpdateResult, 0, total)

	for i, emailID := range set.EmailIDs() {
		e.sendProgress(progress, patchContactUpdate(i+1, total, emailID))
		results = append(results, e.updateOne(ctx, emailID, set.Changes(emailID)))
	}

	return results, nil
}

// updateOne dispatches a single contact and maps the error taxonomy to a
// typed result.
func (e *ContactEngine) updateOne(ctx context.Context, emailID string, newsletters []services.NewsletterSubscription) UpdateResult {
	result := UpdateResult{EmailID: emailID}

	patched, err := e.client.UpdateNewsletters(ctx, emailID, newsletters)
	switch {
	case errors.Is(err, shared.ErrContactNotFound):
		result.Outcome = OutcomeNotFound
	case err != nil:
		result.Outcome = OutcomeError
		result.Err = err
	default:
		result.Outcome = OutcomeSuccess
		result.ResponseID = patched.Email.EmailID
		result.Subscribed = patched.SubscribedNewsletters()
	}

	return result
}
