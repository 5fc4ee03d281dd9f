package tasks

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/ctms-cli/internal/services"
	"github.com/desertthunder/ctms-cli/internal/shared"
)

// requiredColumns are the header names a subscription-change CSV must carry.
var requiredColumns = []string{"email_id", "name", "subscribed"}

// ChangeSet holds subscription changes aggregated by contact.
//
// Contacts keep first-seen order and each contact's changes keep file
// order; repeated (name, subscribed) rows are forwarded verbatim, with
// no deduplication. Last-write-wins is the API's job, not ours.
type ChangeSet struct {
	order   []string
	changes map[string][]services.NewsletterSubscription
}

// EmailIDs returns the distinct contact ids in first-seen order.
func (c *ChangeSet) EmailIDs() []string {
	return c.order
}

// Changes returns the ordered newsletter changes recorded for a contact.
func (c *ChangeSet) Changes(emailID string) []services.NewsletterSubscription {
	return c.changes[emailID]
}

// Len returns the number of distinct contacts in the set.
func (c *ChangeSet) Len() int {
	return len(c.order)
}

func (c *ChangeSet) add(emailID string, change services.NewsletterSubscription) {
	if _, seen := c.changes[emailID]; !seen {
		c.order = append(c.order, emailID)
	}
	c.changes[emailID] = append(c.changes[emailID], change)
}

// ReadChanges parses a subscription-change CSV and aggregates its rows by
// email_id.
//
// The file needs a header row containing at least email_id, name and
// subscribed; extra columns are ignored. A missing required column or a
// row with too few fields is a structural error and aborts the parse —
// there is no partial-file recovery. The subscribed cell coerces to true
// only when it equals "true" case-insensitively; every other value
// (including "1", "yes" and empty) is false.
func ReadChanges(r io.Reader) (*ChangeSet, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", shared.ErrMalformedCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedCSV, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", shared.ErrMalformedCSV, name)
		}
	}

	set := &ChangeSet{changes: make(map[string][]services.NewsletterSubscription)}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrMalformedCSV, err)
		}

		set.add(row[columns["email_id"]], services.NewsletterSubscription{
			Name:       row[columns["name"]],
			Subscribed: strings.EqualFold(row[columns["subscribed"]], "true"),
		})
	}

	return set, nil
}
