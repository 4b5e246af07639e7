package handlers

import (
	"context"
	"errors"
	"time"

	"forecastengine/internal/models"
	"forecastengine/internal/services"
	"forecastengine/pkg/forecast"

	"github.com/gofiber/fiber/v2"
)

type ForecastHandler struct {
	service *services.ForecastService
	timeout time.Duration
}

func NewForecastHandler(service *services.ForecastService) *ForecastHandler {
	return &ForecastHandler{
		service: service,
		timeout: 30 * time.Second,
	}
}

// GetForecast handles POST /v1/forecast
func (h *ForecastHandler) GetForecast(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	req, err := parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	response, err := h.service.Forecast(ctx, *req)
	if err != nil {
		return forecastError(c, err)
	}

	return c.JSON(response)
}

// Compare handles POST /v1/forecast/compare
func (h *ForecastHandler) Compare(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	req, err := parseRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	response, err := h.service.Compare(ctx, *req, c.Query("rank"))
	if err != nil {
		return forecastError(c, err)
	}

	return c.JSON(response)
}

// ListAlgorithms handles GET /v1/algorithms
func (h *ForecastHandler) ListAlgorithms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"algorithms": h.service.Algorithms(),
	})
}

func parseRequest(c *fiber.Ctx) (*models.ForecastRequest, error) {
	if models.IsYAML(c.Get(fiber.HeaderContentType)) {
		return models.ParseYAMLRequest(c.Body())
	}

	var req models.ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error:   "Invalid request body",
		Message: err.Error(),
		Code:    fiber.StatusBadRequest,
	})
}

// forecastError maps engine errors onto HTTP statuses.
func forecastError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	title := "Failed to generate forecast"

	switch {
	case errors.Is(err, forecast.ErrInvalidScenario):
		code, title = fiber.StatusUnprocessableEntity, "Invalid scenario"
	case errors.Is(err, forecast.ErrInvalidOptions), errors.Is(err, forecast.ErrUnknownAlgorithm):
		code, title = fiber.StatusUnprocessableEntity, "Invalid forecast options"
	case errors.Is(err, forecast.ErrInsufficientHistory), errors.Is(err, forecast.ErrInsufficientData):
		code, title = fiber.StatusUnprocessableEntity, "Not enough data for algorithm"
	case errors.Is(err, context.DeadlineExceeded):
		code, title = fiber.StatusGatewayTimeout, "Forecast timed out"
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   title,
		Message: err.Error(),
		Code:    code,
	})
}

// CustomErrorHandler handles Fiber errors
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
