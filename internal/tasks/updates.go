package tasks

import "fmt"

// ProgressUpdate represents a progress event during a bulk operation.
//
// Used to send real-time updates to the CLI layer for display or logging.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ParseInput Phase = iota
	PatchContacts
	DeleteContacts
)

func (p Phase) String() string {
	switch p {
	case ParseInput:
		return "parse_input"
	case PatchContacts:
		return "patch_contacts"
	case DeleteContacts:
		return "delete_contacts"
	default:
		return ""
	}
}

func patchContactUpdate(step, total int, emailID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PatchContacts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] PATCH %s", step, total, emailID),
	}
}

func deleteContactUpdate(step, total int, email string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteContacts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] DELETE %s", step, total, email),
	}
}
