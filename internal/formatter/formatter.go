// package formatter renders workflow results as output lines and
// exportable reports.
//
// The update-line format is a contract consumed by downstream tooling:
// one line per contact, either "{email_id},{slug;slug}" on success,
// "{email_id},404" when the contact does not exist, or an ERROR line.
// Changing it breaks pipelines, so it lives here in one place.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/desertthunder/ctms-cli/internal/models"
	"github.com/desertthunder/ctms-cli/internal/tasks"
)

// UpdateLine renders the stdout line for one contact of the
// subscription-update workflow.
//
// On success the echoed email_id from the response body is used, not the
// input value; the two are expected to match for a correct backend.
func UpdateLine(r tasks.UpdateResult) string {
	switch r.Outcome {
	case tasks.OutcomeSuccess:
		return fmt.Sprintf("%s,%s", r.ResponseID, strings.Join(r.Subscribed, ";"))
	case tasks.OutcomeNotFound:
		return fmt.Sprintf("%s,404", r.EmailID)
	default:
		return fmt.Sprintf("ERROR: email_id: %s, error: %v", r.EmailID, r.Err)
	}
}

// DeleteLine renders the output line for one email of the bulk-delete
// workflow. Success may expand to several lines when the primary email
// mapped to more than one contact.
func DeleteLine(r tasks.DeleteResult) string {
	switch r.Outcome {
	case tasks.OutcomeSuccess:
		lines := make([]string, 0, len(r.Identities))
		for _, identity := range r.Identities {
			line := fmt.Sprintf("DELETING %s (ctms id: %s).", r.Email, identity.EmailID)
			if identity.FxAID != "" {
				line += " fxa: YES."
			}
			if identity.MofoContactID != "" {
				line += " mofo: YES."
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	case tasks.OutcomeNotFound:
		return fmt.Sprintf("%s not found in CTMS", r.Email)
	default:
		return r.Err.Error()
	}
}

// Detail returns the journal detail column for an update result: the
// joined subscribed slugs on success, the error message otherwise.
func Detail(r tasks.UpdateResult) string {
	switch r.Outcome {
	case tasks.OutcomeSuccess:
		return strings.Join(r.Subscribed, ";")
	case tasks.OutcomeNotFound:
		return ""
	default:
		return r.Err.Error()
	}
}

// EntriesToCSV converts journal entries to CSV with columns seq,
// email_id, outcome, detail.
func EntriesToCSV(entries []models.RunEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"seq", "email_id", "outcome", "detail"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			fmt.Sprintf("%d", entry.Seq),
			entry.EmailID,
			entry.Outcome,
			entry.Detail,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
