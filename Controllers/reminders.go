package Controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"CropCare/Engine"
	"CropCare/Models"
	"CropCare/TimeUtils"
)

// ReminderController handles standalone reminder endpoints
type ReminderController struct {
	Engine *Engine.Engine
}

// NewReminderController creates a new ReminderController
func NewReminderController(engine *Engine.Engine) *ReminderController {
	return &ReminderController{Engine: engine}
}

type CreateReminderRequest struct {
	Title  string  `json:"title"`
	Body   string  `json:"body"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type reminderView struct {
	Models.Reminder
	Remaining string `json:"remaining"`
}

// CreateReminder validates and sets a one-shot reminder
func (c *ReminderController) CreateReminder(ctx *fiber.Ctx) error {
	var req CreateReminderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reminder, err := c.Engine.CreateReminder(req.Title, req.Body, req.Amount, req.Unit)
	var vErr *Engine.ValidationError
	if errors.As(err, &vErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message})
	}
	if errors.Is(err, Engine.ErrDispatch) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Gukora amamenyesha byananiranye.",
		})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save reminder",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Amamenyesha yashyizweho neza!",
		"reminder": reminder,
	})
}

// GetReminders lists saved reminders with their remaining time
func (c *ReminderController) GetReminders(ctx *fiber.Ctx) error {
	reminders := c.Engine.Reminders()

	views := make([]reminderView, 0, len(reminders))
	for _, reminder := range reminders {
		views = append(views, reminderView{
			Reminder:  reminder,
			Remaining: c.Engine.TimeRemaining(reminder),
		})
	}
	return ctx.JSON(views)
}

// GetUnits returns the supported time units for the picker
func (c *ReminderController) GetUnits(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"units": TimeUtils.ValidUnits()})
}

// DeleteReminder removes the reminder matching the submitted record and
// cancels its notification
func (c *ReminderController) DeleteReminder(ctx *fiber.Ctx) error {
	var target Models.Reminder
	if err := ctx.BodyParser(&target); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Engine.DeleteReminder(target); err != nil {
		if errors.Is(err, Engine.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reminder not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete reminder"})
	}

	return ctx.JSON(fiber.Map{"message": "Amamenyesha yarakuweho neza!"})
}
