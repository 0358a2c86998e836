package Details

import (
	"context"
	"log"
	"time"

	"Garrison/Models"
)

// Engine decides which assignment documents must be reset for a new day,
// performs the reset, and clones a template assignment forward when none
// exists yet.
type Engine struct {
	Store Store
	Now   func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{Store: store, Now: time.Now}
}

// ResetOutcome records what happened to one assignment during a batch reset.
type ResetOutcome struct {
	ID             string                  `json:"id"`
	WasReset       bool                    `json:"wasReset"`
	PreviousStatus Models.AssignmentStatus `json:"previousStatus,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

// ResetAssignmentForNewDay issues a single partial update returning the
// assignment to its initial state: status assigned, every task incomplete
// with notes cleared, all completion/approval/rejection audit fields null.
// The reset is state-agnostic; a prior day's approval must not carry
// forward. Update errors propagate to the caller, which owns the
// partial-failure policy.
func (e *Engine) ResetAssignmentForNewDay(ctx context.Context, id string, snapshot Models.Assignment) (ResetOutcome, error) {
	tasks := make([]Models.Task, len(snapshot.Tasks))
	for i, task := range snapshot.Tasks {
		task.Completed = false
		task.CompletedAt = nil
		// Notes reset to "" rather than null; the distinction between
		// "never commented" and "cleared" is not preserved across resets.
		task.Notes = ""
		tasks[i] = task
	}

	updates := map[string]interface{}{
		"status":          string(Models.StatusAssigned),
		"tasks":           tasks,
		"startedAt":       nil,
		"startedBy":       nil,
		"completedAt":     nil,
		"completedBy":     nil,
		"completionNotes": nil,
		"approvedAt":      nil,
		"approvedBy":      nil,
		"approvedByName":  nil,
		"approverNotes":   nil,
		"rejectedAt":      nil,
		"rejectedBy":      nil,
		"rejectionReason": nil,
		"lastResetAt":     e.Now(),
	}

	if err := e.Store.UpdateAssignment(ctx, id, updates); err != nil {
		return ResetOutcome{}, err
	}

	return ResetOutcome{ID: id, WasReset: true, PreviousStatus: snapshot.Status}, nil
}

// GetAssignmentsToReset fetches every assignment dated today and keeps the
// ones whose time slot matches the target slot or is "both". The date query
// is deliberately status-blind.
func (e *Engine) GetAssignmentsToReset(ctx context.Context, today string, slot Models.TimeSlot) ([]Models.AssignmentDoc, error) {
	docs, err := e.Store.AssignmentsByDate(ctx, today)
	if err != nil {
		return nil, err
	}

	matched := make([]Models.AssignmentDoc, 0, len(docs))
	for _, doc := range docs {
		if doc.Assignment.TimeSlot.Matches(slot) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// ResetExistingAssignments resets each matching assignment independently. A
// failure on one assignment is recorded in its outcome and does not abort
// the rest of the batch; there is no shared state between resets, so no
// rollback is needed.
func (e *Engine) ResetExistingAssignments(ctx context.Context, today string, slot Models.TimeSlot) ([]ResetOutcome, error) {
	matched, err := e.GetAssignmentsToReset(ctx, today, slot)
	if err != nil {
		return nil, err
	}

	outcomes := make([]ResetOutcome, 0, len(matched))
	for _, doc := range matched {
		outcome, err := e.ResetAssignmentForNewDay(ctx, doc.ID, doc.Assignment)
		if err != nil {
			log.Printf("Error resetting assignment %s: %v", doc.ID, err)
			outcomes = append(outcomes, ResetOutcome{ID: doc.ID, WasReset: false, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
