package handlers

import (
	"time"

	"forecastengine/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	serviceName    = "forecast-engine"
	serviceVersion = "1.0.0"
)

type HealthHandler struct {
	startTime time.Time
	service   *services.ForecastService
}

func NewHealthHandler(service *services.ForecastService) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		service:   service,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
		"uptime":  time.Since(h.startTime).String(),
		"time":    time.Now(),
	})
}

// Ready handles GET /health/ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	algorithms := len(h.service.Algorithms())
	if algorithms == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"checks": fiber.Map{"engine": "no algorithms registered"},
		})
	}

	return c.JSON(fiber.Map{
		"status": "ready",
		"checks": fiber.Map{
			"api":        "ok",
			"engine":     "ok",
			"algorithms": algorithms,
			"cached":     h.service.CachedResponses(),
		},
	})
}
