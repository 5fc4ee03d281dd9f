package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// API errors
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrContactNotFound = fmt.Errorf("contact not found")

	// Input errors
	ErrMalformedCSV    = fmt.Errorf("malformed CSV input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Journal errors
	ErrJournalDisabled = fmt.Errorf("journal not configured")
	ErrRunNotFound     = fmt.Errorf("run not found")
)
