package Details

import (
	"context"

	"Garrison/Models"
)

// Store is the slice of the document database the detail subsystem touches.
// Implemented by Firestore.Store; faked in tests.
type Store interface {
	// AssignmentsByDate returns every assignment for the given date,
	// regardless of status. Status must not be part of the filter: every
	// assignment for the day is reset exactly once, including ones already
	// approved.
	AssignmentsByDate(ctx context.Context, date string) ([]Models.AssignmentDoc, error)

	// MostRecentApproved returns the single most recently approved
	// assignment, or nil when none exists.
	MostRecentApproved(ctx context.Context) (*Models.AssignmentDoc, error)

	// UpdateAssignment applies a partial update to one assignment document.
	UpdateAssignment(ctx context.Context, id string, updates map[string]interface{}) error

	// CreateAssignment stores a new assignment and returns its generated id.
	CreateAssignment(ctx context.Context, a Models.Assignment) (string, error)

	// AcquireResetLease claims the (date, slot) run marker. It returns false
	// when the marker already exists, meaning this slot already ran today.
	AcquireResetLease(ctx context.Context, date string, slot Models.TimeSlot) (bool, error)

	// ReleaseResetLease removes the run marker so a failed invocation can be
	// retried.
	ReleaseResetLease(ctx context.Context, date string, slot Models.TimeSlot) error

	// TokensForPersonnel returns the push tokens registered for one person.
	TokensForPersonnel(ctx context.Context, personnelID string) ([]string, error)
}

// Reminder is the payload handed to the notification transport.
type Reminder struct {
	Title string
	Body  string
	Data  map[string]string
}

// Notifier sends a reminder to a set of device tokens and reports per-token
// success and failure counts.
type Notifier interface {
	SendReminder(ctx context.Context, tokens []string, reminder Reminder) (sent int, failed int, err error)
}

// Alerter escalates operational failures. Implementations must not block the
// run on delivery problems.
type Alerter interface {
	Alert(message string)
}
