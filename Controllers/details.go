package Controllers

import (
	"Garrison/AbstractFunctions"
	"Garrison/Details"
	"Garrison/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DetailController exposes the ops surface for the detail subsystem: manual
// runs, run history, and today's assignment.
type DetailController struct {
	Dispatcher *Details.Dispatcher
	DB         *gorm.DB
}

func NewDetailController(dispatcher *Details.Dispatcher, db *gorm.DB) *DetailController {
	return &DetailController{Dispatcher: dispatcher, DB: db}
}

// RunReminders triggers a reset-and-remind run for the given slot, exactly
// as the cron jobs do. The (date, slot) lease still applies, so a manual run
// after the scheduled one reports skipped.
func (c *DetailController) RunReminders(ctx *fiber.Ctx) error {
	slot := Models.TimeSlot(ctx.Query("slot"))
	if slot != Models.SlotMorning && slot != Models.SlotEvening {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "slot must be morning or evening",
		})
	}

	report, err := c.Dispatcher.Run(ctx.UserContext(), slot, "manual")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return ctx.JSON(report)
}

// GetRuns lists recent run-log entries, newest first, optionally filtered by
// date.
func (c *DetailController) GetRuns(ctx *fiber.Ctx) error {
	query := c.DB.Order("created_at desc").Limit(50)
	if date := ctx.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var runs []Models.DetailRun
	if err := query.Find(&runs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve runs",
		})
	}

	return ctx.JSON(runs)
}

// GetTodayAssignment returns today's assignment for the slot, or 404 when
// none exists yet.
func (c *DetailController) GetTodayAssignment(ctx *fiber.Ctx) error {
	slot := Models.TimeSlot(ctx.Query("slot"))
	if slot != Models.SlotMorning && slot != Models.SlotEvening {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "slot must be morning or evening",
		})
	}

	today, err := AbstractFunctions.GetTodayInTimezone(c.Dispatcher.Timezone)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	docs, err := c.Dispatcher.Engine.GetAssignmentsToReset(ctx.UserContext(), today, slot)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(docs) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No assignment for today",
		})
	}

	return ctx.JSON(docs[0])
}
