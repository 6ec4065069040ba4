package FiberConfig

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"CropCare/Controllers"
	"CropCare/Engine"
	"CropCare/Models"
	"CropCare/middleware"
)

// SetupRoutes registers the scheduling API.
func SetupRoutes(app *fiber.App, engine *Engine.Engine) {
	scheduleController := Controllers.NewScheduleController(engine)
	reminderController := Controllers.NewReminderController(engine)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Crop schedule routes
	schedules := api.Group("/schedules")
	schedules.Get("/", scheduleController.GetSchedules)
	schedules.Post("/", scheduleController.CreateSchedule)
	schedules.Delete("/:index", scheduleController.DeleteSchedule)

	// Standalone reminder routes
	reminders := api.Group("/reminders")
	reminders.Get("/", reminderController.GetReminders)
	reminders.Post("/", reminderController.CreateReminder)
	reminders.Delete("/", reminderController.DeleteReminder)

	// Picker data
	api.Get("/crops", scheduleController.GetCrops)
	api.Get("/units", reminderController.GetUnits)

	// Device token registration (notification permission grant)
	api.Post("/token", Models.UpdateToken)

	// Saga reconciliation for failed task dispatches
	api.Post("/dispatch/retry", scheduleController.RetryDispatches)
}

// FiberConfig builds the app, mounts middleware and routes, and listens.
func FiberConfig(engine *Engine.Engine, port string) {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, engine)

	app.Listen(":" + port)
}
