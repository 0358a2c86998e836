package Models

import "time"

// TimeSlot tags an assignment with the part of day it covers.
// "both" is a single assignment that answers morning and evening queries.
type TimeSlot string

const (
	SlotMorning TimeSlot = "morning"
	SlotEvening TimeSlot = "evening"
	SlotBoth    TimeSlot = "both"
)

// Matches reports whether an assignment tagged s should be picked up by a
// run targeting slot.
func (s TimeSlot) Matches(slot TimeSlot) bool {
	return s == slot || s == SlotBoth
}

type AssignmentStatus string

const (
	StatusAssigned   AssignmentStatus = "assigned"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
	StatusApproved   AssignmentStatus = "approved"
	StatusRejected   AssignmentStatus = "rejected"
)

// PersonnelRef is a reference to a soldier by id, not an ownership relation.
type PersonnelRef struct {
	PersonnelID string `firestore:"personnelId" json:"personnelId"`
	Name        string `firestore:"name" json:"name"`
	Rank        string `firestore:"rank" json:"rank"`
}

// Task is embedded in an assignment; it is not separately addressable.
// Identity and descriptive fields are immutable after assignment creation.
type Task struct {
	TaskID          string       `firestore:"taskId" json:"taskId" validate:"required"`
	TaskText        string       `firestore:"taskText" json:"taskText"`
	AreaName        string       `firestore:"areaName" json:"areaName"`
	Location        string       `firestore:"location" json:"location"`
	CriticalFailure bool         `firestore:"criticalFailure" json:"criticalFailure"`
	AssignedTo      PersonnelRef `firestore:"assignedTo" json:"assignedTo" validate:"omitempty"`
	Completed       bool         `firestore:"completed" json:"completed"`
	CompletedAt     *time.Time   `firestore:"completedAt" json:"completedAt"`
	Notes           string       `firestore:"notes" json:"notes"`
}

// Assignment is one day/time-slot instance of a cleaning-detail checklist.
// The document id is carried separately (AssignmentDoc), never stored in the
// document itself.
type Assignment struct {
	TemplateID     string           `firestore:"templateId" json:"templateId"`
	TemplateName   string           `firestore:"templateName" json:"templateName"`
	AssignmentDate string           `firestore:"assignmentDate" json:"assignmentDate" validate:"required,datetime=2006-01-02"`
	TimeSlot       TimeSlot         `firestore:"timeSlot" json:"timeSlot" validate:"required,oneof=morning evening both"`
	MorningTime    string           `firestore:"morningTime" json:"morningTime"`
	EveningTime    string           `firestore:"eveningTime" json:"eveningTime"`
	Status         AssignmentStatus `firestore:"status" json:"status" validate:"required,oneof=assigned in_progress completed approved rejected"`
	Tasks          []Task           `firestore:"tasks" json:"tasks" validate:"dive"`
	AssignedTo     []PersonnelRef   `firestore:"assignedTo" json:"assignedTo"`

	// Back-reference to the assignment this one was cloned from. Lookup
	// only; history is preserved, ownership is not transferred.
	ClonedFrom string `firestore:"clonedFrom" json:"clonedFrom"`

	StartedAt       *time.Time `firestore:"startedAt" json:"startedAt"`
	StartedBy       string     `firestore:"startedBy" json:"startedBy"`
	CompletedAt     *time.Time `firestore:"completedAt" json:"completedAt"`
	CompletedBy     string     `firestore:"completedBy" json:"completedBy"`
	CompletionNotes string     `firestore:"completionNotes" json:"completionNotes"`
	ApprovedAt      *time.Time `firestore:"approvedAt" json:"approvedAt"`
	ApprovedBy      string     `firestore:"approvedBy" json:"approvedBy"`
	ApprovedByName  string     `firestore:"approvedByName" json:"approvedByName"`
	ApproverNotes   string     `firestore:"approverNotes" json:"approverNotes"`
	RejectedAt      *time.Time `firestore:"rejectedAt" json:"rejectedAt"`
	RejectedBy      string     `firestore:"rejectedBy" json:"rejectedBy"`
	RejectionReason string     `firestore:"rejectionReason" json:"rejectionReason"`
	LastResetAt     *time.Time `firestore:"lastResetAt" json:"lastResetAt"`
}

// AssignmentDoc pairs an assignment with its Firestore document id.
type AssignmentDoc struct {
	ID         string     `json:"id"`
	Assignment Assignment `json:"assignment"`
}

// DistinctAssignees returns every person referenced by the assignment's
// tasks, first occurrence wins, in task order.
func (a *Assignment) DistinctAssignees() []PersonnelRef {
	seen := make(map[string]bool)
	var assignees []PersonnelRef
	for _, task := range a.Tasks {
		id := task.AssignedTo.PersonnelID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		assignees = append(assignees, task.AssignedTo)
	}
	return assignees
}

// PendingTaskCount counts incomplete tasks assigned to the given person.
func (a *Assignment) PendingTaskCount(personnelID string) int {
	count := 0
	for _, task := range a.Tasks {
		if task.AssignedTo.PersonnelID == personnelID && !task.Completed {
			count++
		}
	}
	return count
}
