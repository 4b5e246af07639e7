package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the health and v1 API routes.
func RegisterRoutes(app *fiber.App, forecastHandler *ForecastHandler, healthHandler *HealthHandler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": serviceName,
			"version": serviceVersion,
			"status":  "running",
		})
	})

	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)

	v1 := app.Group("/v1")
	v1.Get("/algorithms", forecastHandler.ListAlgorithms)
	v1.Post("/forecast", forecastHandler.GetForecast)
	v1.Post("/forecast/compare", forecastHandler.Compare)
}
