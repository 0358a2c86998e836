package Details

import (
	"context"
	"log"

	"Garrison/Models"
)

// GetMostRecentCompletedAssignment finds a template to clone when no
// assignment exists yet for today: the single most recently approved
// assignment, kept only if its time slot matches the target or is "both".
func (e *Engine) GetMostRecentCompletedAssignment(ctx context.Context, slot Models.TimeSlot) (*Models.AssignmentDoc, error) {
	doc, err := e.Store.MostRecentApproved(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil || !doc.Assignment.TimeSlot.Matches(slot) {
		return nil, nil
	}
	return doc, nil
}

// CloneAssignmentForDate creates a new assignment for newDate from the
// source's template and task structure, with every task's completion cleared
// and a clonedFrom back-reference. Cloning is purely additive; the source is
// never mutated or deleted. Returns the new document's generated id.
func (e *Engine) CloneAssignmentForDate(ctx context.Context, source Models.AssignmentDoc, newDate string, slot Models.TimeSlot) (string, error) {
	clone := buildClone(source, newDate)

	id, err := e.Store.CreateAssignment(ctx, clone)
	if err != nil {
		return "", err
	}

	log.Printf("Cloned assignment %s -> %s for %s (%s slot)", source.ID, id, newDate, slot)
	return id, nil
}

// buildClone copies template, tasks and assignees verbatim, resets every
// task's completion fields, and leaves all assignment-level audit fields
// null. Task notes are preserved on a clone, unlike on a reset.
func buildClone(source Models.AssignmentDoc, newDate string) Models.Assignment {
	src := source.Assignment

	tasks := make([]Models.Task, len(src.Tasks))
	for i, task := range src.Tasks {
		task.Completed = false
		task.CompletedAt = nil
		tasks[i] = task
	}

	return Models.Assignment{
		TemplateID:     src.TemplateID,
		TemplateName:   src.TemplateName,
		AssignmentDate: newDate,
		TimeSlot:       src.TimeSlot,
		MorningTime:    src.MorningTime,
		EveningTime:    src.EveningTime,
		Status:         Models.StatusAssigned,
		Tasks:          tasks,
		AssignedTo:     append([]Models.PersonnelRef(nil), src.AssignedTo...),
		ClonedFrom:     source.ID,
	}
}
