package FiberConfig

import (
	"fmt"

	"Garrison/Config"
	"Garrison/Controllers"
	"Garrison/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func SetupRoutes(app *fiber.App, cfg *Config.Config, details *Controllers.DetailController, tokens *Controllers.TokenController) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.Verify(cfg.APIKey))
	api.Post("/details/run", details.RunReminders)
	api.Get("/details/runs", details.GetRuns)
	api.Get("/details/today", details.GetTodayAssignment)
	api.Post("/UpdateToken", tokens.UpdateToken)
}

// FiberConfig assembles the ops HTTP surface and blocks serving it.
func FiberConfig(cfg *Config.Config, details *Controllers.DetailController, tokens *Controllers.TokenController) error {
	fmt.Println("Server Up...")
	app := fiber.New()

	app.Use(middleware.RequestLogger())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Api-Key, X-Requested-With",
	}))

	SetupRoutes(app, cfg, details, tokens)

	return app.Listen(":" + cfg.Port)
}
