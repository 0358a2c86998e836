package CronJobs

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"Garrison/Details"
	"Garrison/Models"

	"github.com/robfig/cron/v3"
)

const runTimeout = 5 * time.Minute

// DetailScheduler drives the morning and evening detail runs at configured
// local times. The scheduler fires at most one run per slot per tick; the
// (date, slot) lease in the store guards against a second overlapping
// invocation.
type DetailScheduler struct {
	cronScheduler *cron.Cron
	dispatcher    *Details.Dispatcher
	morningTime   string
	eveningTime   string
	morningJobID  cron.EntryID
	eveningJobID  cron.EntryID
}

// NewDetailScheduler creates a scheduler ticking in the given IANA timezone.
func NewDetailScheduler(dispatcher *Details.Dispatcher, timezone, morningTime, eveningTime string) (*DetailScheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("error loading timezone %s: %v", timezone, err)
	}

	return &DetailScheduler{
		cronScheduler: cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		dispatcher:    dispatcher,
		morningTime:   morningTime,
		eveningTime:   eveningTime,
	}, nil
}

// Start registers both daily jobs and starts the scheduler.
func (s *DetailScheduler) Start() error {
	morningSpec, err := cronSpecForTime(s.morningTime)
	if err != nil {
		return fmt.Errorf("invalid morning reminder time: %v", err)
	}
	eveningSpec, err := cronSpecForTime(s.eveningTime)
	if err != nil {
		return fmt.Errorf("invalid evening reminder time: %v", err)
	}

	s.morningJobID, err = s.cronScheduler.AddFunc(morningSpec, func() {
		s.runSlot(Models.SlotMorning)
	})
	if err != nil {
		return fmt.Errorf("error scheduling morning job: %v", err)
	}

	s.eveningJobID, err = s.cronScheduler.AddFunc(eveningSpec, func() {
		s.runSlot(Models.SlotEvening)
	})
	if err != nil {
		return fmt.Errorf("error scheduling evening job: %v", err)
	}

	s.cronScheduler.Start()
	log.Printf("Detail scheduler started - morning at %s, evening at %s", s.morningTime, s.eveningTime)
	return nil
}

// Stop terminates the scheduler. Running jobs finish on their own.
func (s *DetailScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Detail scheduler stopped")
	}
}

// UpdateSchedule replaces one slot's firing time.
func (s *DetailScheduler) UpdateSchedule(slot Models.TimeSlot, hhmm string) error {
	spec, err := cronSpecForTime(hhmm)
	if err != nil {
		return fmt.Errorf("invalid reminder time %s: %v", hhmm, err)
	}

	switch slot {
	case Models.SlotMorning:
		s.cronScheduler.Remove(s.morningJobID)
		s.morningJobID, err = s.cronScheduler.AddFunc(spec, func() { s.runSlot(Models.SlotMorning) })
		s.morningTime = hhmm
	case Models.SlotEvening:
		s.cronScheduler.Remove(s.eveningJobID)
		s.eveningJobID, err = s.cronScheduler.AddFunc(spec, func() { s.runSlot(Models.SlotEvening) })
		s.eveningTime = hhmm
	default:
		return fmt.Errorf("cannot schedule slot %q", slot)
	}

	if err != nil {
		return fmt.Errorf("error updating %s schedule: %v", slot, err)
	}

	log.Printf("%s detail schedule updated to %s", slot, hhmm)
	return nil
}

func (s *DetailScheduler) runSlot(slot Models.TimeSlot) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	log.Printf("Running scheduled %s detail reminders", slot)
	report, err := s.dispatcher.Run(ctx, slot, "cron")
	if err != nil {
		log.Printf("Error in scheduled %s detail run: %v", slot, err)
		return
	}

	if report.Skipped {
		log.Printf("Scheduled %s detail run skipped, already executed today", slot)
		return
	}
	log.Printf("Completed %s detail run: %d reset, %d users notified, %d users failed",
		slot, len(report.ResetResults), report.NotifiedUsers, report.FailedUsers)
}

// cronSpecForTime converts a local HH:MM into a six-field daily cron spec.
func cronSpecForTime(hhmm string) (string, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("time %q is not in HH:MM format", hhmm)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", hhmm)
	}

	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
