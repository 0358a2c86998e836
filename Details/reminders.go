package Details

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"Garrison/AbstractFunctions"
	"Garrison/Models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Dispatcher orchestrates one scheduled invocation: take the run lease,
// reset today's assignments, resolve the day's assignment (cloning a
// template forward if none exists), and fan out push reminders to every
// assigned person.
type Dispatcher struct {
	Engine   *Engine
	Store    Store
	Notifier Notifier
	Alerter  Alerter  // optional
	DB       *gorm.DB // optional run-log sink
	Timezone string
}

func NewDispatcher(store Store, notifier Notifier, timezone string) *Dispatcher {
	return &Dispatcher{
		Engine:   NewEngine(store),
		Store:    store,
		Notifier: notifier,
		Timezone: timezone,
	}
}

// RunReport is the observable result of one invocation. ResetResults is
// always present, even when empty.
type RunReport struct {
	RunID         string          `json:"runId"`
	Date          string          `json:"date"`
	TimeSlot      Models.TimeSlot `json:"timeSlot"`
	Skipped       bool            `json:"skipped"`
	ResetResults  []ResetOutcome  `json:"resetResults"`
	AssignmentID  string          `json:"assignmentId,omitempty"`
	Cloned        bool            `json:"cloned"`
	NotifiedUsers int             `json:"notifiedUsers"`
	FailedUsers   int             `json:"failedUsers"`
}

// dayAssignment tags how today's assignment was obtained: freshly reset, or
// cloned forward from the most recent approved one.
type dayAssignment struct {
	Doc    Models.AssignmentDoc
	Cloned bool
}

// Run resolves today in the configured timezone and executes the reset and
// reminder sequence for the given slot. trigger is recorded in the run log
// ("cron" or "manual").
func (d *Dispatcher) Run(ctx context.Context, slot Models.TimeSlot, trigger string) (*RunReport, error) {
	today, err := AbstractFunctions.GetTodayInTimezone(d.Timezone)
	if err != nil {
		return nil, err
	}
	return d.runForDate(ctx, today, slot, trigger)
}

func (d *Dispatcher) runForDate(ctx context.Context, today string, slot Models.TimeSlot, trigger string) (*RunReport, error) {
	start := time.Now()
	report := &RunReport{
		RunID:        uuid.NewString(),
		Date:         today,
		TimeSlot:     slot,
		ResetResults: []ResetOutcome{},
	}

	acquired, err := d.Store.AcquireResetLease(ctx, today, slot)
	if err != nil {
		return nil, fmt.Errorf("error acquiring reset lease for %s %s: %w", today, slot, err)
	}
	if !acquired {
		log.Printf("Reset lease for %s %s already held, skipping run", today, slot)
		report.Skipped = true
		d.recordRun(report, trigger, time.Since(start))
		return report, nil
	}

	outcomes, err := d.Engine.ResetExistingAssignments(ctx, today, slot)
	if err != nil {
		d.releaseLease(ctx, today, slot)
		d.alert(fmt.Sprintf("Detail reset failed for %s %s: %v", today, slot, err))
		return nil, err
	}
	report.ResetResults = outcomes

	day, err := d.resolveDayAssignment(ctx, today, slot)
	if err != nil {
		d.releaseLease(ctx, today, slot)
		d.alert(fmt.Sprintf("Detail assignment lookup failed for %s %s: %v", today, slot, err))
		return nil, err
	}

	if day == nil {
		log.Printf("No assignment exists or could be cloned for %s %s, no reminders sent", today, slot)
	} else {
		report.AssignmentID = day.Doc.ID
		report.Cloned = day.Cloned
		d.notifyAssignees(ctx, day.Doc, slot, report)
	}

	failures := 0
	for _, outcome := range outcomes {
		if !outcome.WasReset {
			failures++
		}
	}
	if failures > 0 {
		d.alert(fmt.Sprintf("Detail reset for %s %s finished with %d of %d assignments failed", today, slot, failures, len(outcomes)))
	}

	d.recordRun(report, trigger, time.Since(start))
	return report, nil
}

// resolveDayAssignment returns today's assignment for the slot. When none
// exists it falls back to cloning the most recently approved assignment
// forward; a nil result means there was nothing to clone either.
func (d *Dispatcher) resolveDayAssignment(ctx context.Context, today string, slot Models.TimeSlot) (*dayAssignment, error) {
	matched, err := d.Engine.GetAssignmentsToReset(ctx, today, slot)
	if err != nil {
		return nil, err
	}
	if len(matched) > 0 {
		return &dayAssignment{Doc: matched[0]}, nil
	}

	source, err := d.Engine.GetMostRecentCompletedAssignment(ctx, slot)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, nil
	}

	id, err := d.Engine.CloneAssignmentForDate(ctx, *source, today, slot)
	if err != nil {
		return nil, err
	}

	doc := Models.AssignmentDoc{ID: id, Assignment: buildClone(*source, today)}
	return &dayAssignment{Doc: doc, Cloned: true}, nil
}

// notifyAssignees sends one reminder per distinct assigned person. A token
// lookup or delivery failure for one person never stops delivery to the
// rest, and never suppresses the reset outcomes already gathered.
func (d *Dispatcher) notifyAssignees(ctx context.Context, doc Models.AssignmentDoc, slot Models.TimeSlot, report *RunReport) {
	for _, person := range doc.Assignment.DistinctAssignees() {
		tokens, err := d.Store.TokensForPersonnel(ctx, person.PersonnelID)
		if err != nil {
			log.Printf("Error looking up tokens for %s: %v", person.PersonnelID, err)
			report.FailedUsers++
			continue
		}
		if len(tokens) == 0 {
			log.Printf("No device tokens registered for %s, skipping", person.PersonnelID)
			continue
		}

		reminder := buildReminder(doc, slot, person.PersonnelID)
		sent, failed, err := d.Notifier.SendReminder(ctx, tokens, reminder)
		if err != nil {
			log.Printf("Error sending reminder to %s: %v", person.PersonnelID, err)
			report.FailedUsers++
			continue
		}

		log.Printf("Reminder sent to %s (%d tokens ok, %d failed)", person.PersonnelID, sent, failed)
		report.NotifiedUsers++
	}
}

func buildReminder(doc Models.AssignmentDoc, slot Models.TimeSlot, personnelID string) Reminder {
	title := "Morning detail reminder"
	if slot == Models.SlotEvening {
		title = "Evening detail reminder"
	}

	pending := doc.Assignment.PendingTaskCount(personnelID)
	body := fmt.Sprintf("%s: you have %d task(s) pending for today", doc.Assignment.TemplateName, pending)

	return Reminder{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"assignmentId": doc.ID,
			"date":         doc.Assignment.AssignmentDate,
			"timeSlot":     string(slot),
		},
	}
}

func (d *Dispatcher) releaseLease(ctx context.Context, today string, slot Models.TimeSlot) {
	if err := d.Store.ReleaseResetLease(ctx, today, slot); err != nil {
		log.Printf("Error releasing reset lease for %s %s: %v", today, slot, err)
	}
}

func (d *Dispatcher) alert(message string) {
	log.Println(message)
	if d.Alerter != nil {
		d.Alerter.Alert(message)
	}
}

// recordRun persists the run to the local audit log. Best effort; a logging
// failure never fails the run.
func (d *Dispatcher) recordRun(report *RunReport, trigger string, elapsed time.Duration) {
	if d.DB == nil {
		return
	}

	outcomes, err := json.Marshal(report.ResetResults)
	if err != nil {
		log.Printf("Error marshaling reset outcomes for run log: %v", err)
		outcomes = []byte("[]")
	}

	failures := 0
	for _, outcome := range report.ResetResults {
		if !outcome.WasReset {
			failures++
		}
	}

	run := Models.DetailRun{
		RunID:         report.RunID,
		Date:          report.Date,
		TimeSlot:      string(report.TimeSlot),
		Trigger:       trigger,
		Skipped:       report.Skipped,
		ResetCount:    len(report.ResetResults),
		FailureCount:  failures,
		AssignmentID:  report.AssignmentID,
		Cloned:        report.Cloned,
		NotifiedUsers: report.NotifiedUsers,
		FailedUsers:   report.FailedUsers,
		Outcomes:      datatypes.JSON(outcomes),
		DurationMs:    elapsed.Milliseconds(),
	}

	if err := d.DB.Create(&run).Error; err != nil {
		log.Printf("Error recording detail run %s: %v", report.RunID, err)
	}
}
