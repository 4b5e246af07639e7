package models

import (
	"time"

	"forecastengine/pkg/forecast"
)

// ForecastRequest is the body of both forecast endpoints and the document
// read by the CLI.
type ForecastRequest struct {
	Scenario forecast.Scenario `json:"scenario" yaml:"scenario"`

	// Algorithm is used by single runs and defaults to simple.
	Algorithm forecast.Algorithm `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`

	// Algorithms is used by comparisons and defaults to every algorithm.
	Algorithms []forecast.Algorithm `json:"algorithms,omitempty" yaml:"algorithms,omitempty"`

	Options    forecast.Options `json:"options" yaml:"options"`
	Confidence float64          `json:"confidence,omitempty" yaml:"confidence,omitempty"` // 0.80, 0.90, 0.95 or 0.99
}

// ForecastResponse wraps a single algorithm run
type ForecastResponse struct {
	RunID       string                   `json:"runId"`
	Result      *forecast.ForecastResult `json:"result"`
	GeneratedAt time.Time                `json:"generatedAt"`
	CacheHit    bool                     `json:"cacheHit"`
}

// CompareResponse wraps an algorithm comparison
type CompareResponse struct {
	RunID       string                      `json:"runId"`
	Results     []forecast.ForecastResult   `json:"results"`
	Skipped     []forecast.SkippedAlgorithm `json:"skipped,omitempty"`
	RankedBy    string                      `json:"rankedBy,omitempty"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	CacheHit    bool                        `json:"cacheHit"`
}

// AlgorithmInfo describes one supported algorithm
type AlgorithmInfo struct {
	Name        forecast.Algorithm `json:"name"`
	Seasonal    bool               `json:"seasonal"`
	Description string             `json:"description"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
