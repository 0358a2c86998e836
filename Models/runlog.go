package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DetailRun is the local audit record of one scheduled (or manually
// triggered) reset-and-remind invocation.
type DetailRun struct {
	gorm.Model
	RunID         string         `gorm:"uniqueIndex;size:36" json:"runId"`
	Date          string         `json:"date"`
	TimeSlot      string         `json:"timeSlot"`
	Trigger       string         `json:"trigger"` // "cron" or "manual"
	Skipped       bool           `json:"skipped"` // lease was already held
	ResetCount    int            `json:"resetCount"`
	FailureCount  int            `json:"failureCount"`
	AssignmentID  string         `json:"assignmentId"`
	Cloned        bool           `json:"cloned"`
	NotifiedUsers int            `json:"notifiedUsers"`
	FailedUsers   int            `json:"failedUsers"`
	Outcomes      datatypes.JSON `json:"outcomes"`
	DurationMs    int64          `json:"durationMs"`
}
