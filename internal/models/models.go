// package models defines the data model for the local run journal
package models

import (
	"fmt"
	"time"
)

// Run records one bulk subscription-update run.
type Run struct {
	ID          string    // uuid, generated at record time
	CSVPath     string    // input file path as given on the command line
	Updated     int       // contacts patched successfully
	NotFound    int       // contacts the API reported 404 for
	Failed      int       // contacts that hit the per-row error branch
	StartedAt   time.Time // first PATCH dispatch
	CompletedAt time.Time // loop completion
}

// Validate checks that the run record is complete.
func (r *Run) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("run id is empty")
	}
	if r.CSVPath == "" {
		return fmt.Errorf("run csv path is empty")
	}
	if r.StartedAt.IsZero() || r.CompletedAt.IsZero() {
		return fmt.Errorf("run timestamps are not set")
	}
	if r.CompletedAt.Before(r.StartedAt) {
		return fmt.Errorf("run completed before it started")
	}
	return nil
}

// Contacts returns the number of distinct contacts the run processed.
func (r *Run) Contacts() int {
	return r.Updated + r.NotFound + r.Failed
}

// RunEntry records the outcome for one contact within a run, in dispatch
// order (Seq starts at 1).
type RunEntry struct {
	RunID   string
	Seq     int
	EmailID string
	Outcome string // success, not_found or error
	Detail  string // joined subscribed slugs, or the error message
}

// Validate checks that the entry is complete.
func (e *RunEntry) Validate() error {
	if e.RunID == "" {
		return fmt.Errorf("entry run id is empty")
	}
	if e.Seq < 1 {
		return fmt.Errorf("entry sequence must start at 1")
	}
	if e.EmailID == "" {
		return fmt.Errorf("entry email id is empty")
	}
	if e.Outcome == "" {
		return fmt.Errorf("entry outcome is empty")
	}
	return nil
}
