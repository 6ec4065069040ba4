package Controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"CropCare/Catalog"
	"CropCare/Engine"
	"CropCare/TimeUtils"
)

// ScheduleController handles crop schedule endpoints
type ScheduleController struct {
	Engine *Engine.Engine
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(engine *Engine.Engine) *ScheduleController {
	return &ScheduleController{Engine: engine}
}

type CreateScheduleRequest struct {
	Crop         string `json:"crop" validate:"required"`
	PlantingDate string `json:"plantingDate" validate:"required"`
	FarmName     string `json:"farmName" validate:"required"`
}

type taskView struct {
	Date        time.Time `json:"date"`
	DateDisplay string    `json:"dateDisplay"`
	Task        string    `json:"task"`
}

type scheduleView struct {
	Crop                string     `json:"crop"`
	PlantingDate        time.Time  `json:"plantingDate"`
	PlantingDateDisplay string     `json:"plantingDateDisplay"`
	FarmName            string     `json:"farmName"`
	Tasks               []taskView `json:"tasks"`
}

// parsePlantingDate accepts the date-only form the picker submits, or a
// full RFC 3339 timestamp.
func parsePlantingDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// CreateSchedule creates a schedule and registers its task notifications
func (c *ScheduleController) CreateSchedule(ctx *fiber.Ctx) error {
	var req CreateScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	plantingDate, err := parsePlantingDate(req.PlantingDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nyamuneka wujuje ibisabwa byose.",
		})
	}

	schedule, err := c.Engine.CreateSchedule(req.Crop, plantingDate, req.FarmName)
	var vErr *Engine.ValidationError
	if errors.As(err, &vErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message})
	}
	if errors.Is(err, Engine.ErrDispatch) {
		// The schedule was persisted; only notification registration failed.
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":    "Gukora amamenyesha byananiranye.",
			"schedule": schedule,
		})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save schedule",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Uzabona impuruza ku kazi kose!",
		"schedule": schedule,
	})
}

// GetSchedules lists all schedules with localized display dates
func (c *ScheduleController) GetSchedules(ctx *fiber.Ctx) error {
	schedules := c.Engine.Schedules()

	views := make([]scheduleView, 0, len(schedules))
	for _, schedule := range schedules {
		view := scheduleView{
			Crop:                schedule.Crop,
			PlantingDate:        schedule.PlantingDate,
			PlantingDateDisplay: TimeUtils.FormatLocalized(schedule.PlantingDate),
			FarmName:            schedule.FarmName,
			Tasks:               make([]taskView, 0, len(schedule.Tasks)),
		}
		for _, task := range schedule.Tasks {
			view.Tasks = append(view.Tasks, taskView{
				Date:        task.Date,
				DateDisplay: TimeUtils.FormatLocalized(task.Date),
				Task:        task.Description,
			})
		}
		views = append(views, view)
	}

	return ctx.JSON(views)
}

// DeleteSchedule removes the schedule at the given position and cancels
// its task notifications
func (c *ScheduleController) DeleteSchedule(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule index"})
	}

	if err := c.Engine.DeleteSchedule(index); err != nil {
		if errors.Is(err, Engine.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete schedule"})
	}

	return ctx.JSON(fiber.Map{"message": "Gahunda Yasibwe."})
}

// GetCrops returns the supported crop types for the picker
func (c *ScheduleController) GetCrops(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"crops": Catalog.SupportedCrops()})
}

// RetryDispatches re-registers notifications for tasks whose earlier
// dispatch attempt failed
func (c *ScheduleController) RetryDispatches(ctx *fiber.Ctx) error {
	repaired, err := c.Engine.RetryFailedDispatches()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retry dispatches"})
	}
	return ctx.JSON(fiber.Map{"repaired": repaired})
}
