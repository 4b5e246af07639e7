package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"forecastengine/internal/config"
	"forecastengine/internal/models"
	"forecastengine/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioJSON = `{
	"scenario": {
		"id": "plan",
		"name": "Plan",
		"baseline": {
			"revenue": [{"id": "rev1", "name": "Sales", "amount": 750000, "category": "revenue"}],
			"costOfSales": [],
			"expenses": []
		},
		"assumptions": [{"id": "a1", "targetItemId": "rev1", "category": "revenue", "growthType": "percentage", "growthRate": 5}],
		"periodCount": 3,
		"periodType": "monthly",
		"startDate": "2025-01-01"
	}%s
}`

const nanActualYAML = `
scenario:
  id: y2
  baseline:
    revenue: [{id: rev1, name: Sales, amount: 1000}]
  periodCount: 3
  periodType: monthly
  startDate: 2025-01-01
options:
  actualData: [1000, .nan, 1200]
`

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	service := services.NewForecastService(&config.Config{
		CacheTTL:          time.Minute,
		MaxParallelRuns:   2,
		DefaultConfidence: 0.95,
	})
	t.Cleanup(service.Close)

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	RegisterRoutes(app, NewForecastHandler(service), NewHealthHandler(service))
	return app
}

func body(extra string) string {
	return strings.Replace(scenarioJSON, "%s", extra, 1)
}

func doRequest(t *testing.T, app *fiber.App, method, target, contentType, payload string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestGetForecast(t *testing.T) {
	app := setupApp(t)

	resp, data := doRequest(t, app, http.MethodPost, "/v1/forecast", fiber.MIMEApplicationJSON, body(`, "algorithm": "regression"`))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out models.ForecastResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, "regression", string(out.Result.Algorithm))
	assert.Len(t, out.Result.Forecast, 3)
	assert.Equal(t, "Mar 2025", out.Result.Periods[2].Label)
}

func TestGetForecastYAML(t *testing.T) {
	app := setupApp(t)

	payload := `
scenario:
  id: y1
  baseline:
    revenue: [{id: rev1, name: Sales, amount: 1000}]
  periodCount: 2
  periodType: quarterly
  startDate: 2025-01-01
algorithm: simple
`
	resp, data := doRequest(t, app, http.MethodPost, "/v1/forecast", "application/x-yaml", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, string(data), `"label":"Q2 2025"`)
}

func TestGetForecastErrors(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name        string
		contentType string
		payload     string
		want        int
	}{
		{"malformed json", fiber.MIMEApplicationJSON, `{"scenario":`, http.StatusBadRequest},
		{"malformed yaml", "application/x-yaml", "scenario: [", http.StatusBadRequest},
		{"zero periods", fiber.MIMEApplicationJSON, strings.Replace(body(""), `"periodCount": 3`, `"periodCount": 0`, 1), http.StatusUnprocessableEntity},
		{"unknown algorithm", fiber.MIMEApplicationJSON, body(`, "algorithm": "prophet"`), http.StatusUnprocessableEntity},
		{"bad alpha", fiber.MIMEApplicationJSON, body(`, "options": {"alpha": 4}`), http.StatusUnprocessableEntity},
		{"seasonal without history", fiber.MIMEApplicationJSON, body(`, "algorithm": "holt-winters"`), http.StatusUnprocessableEntity},
		{"nan actual in yaml", "application/x-yaml", nanActualYAML, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := doRequest(t, app, http.MethodPost, "/v1/forecast", tt.contentType, tt.payload)
			assert.Equal(t, tt.want, resp.StatusCode, string(data))

			var e models.ErrorResponse
			require.NoError(t, json.Unmarshal(data, &e))
			assert.Equal(t, tt.want, e.Code)
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestCompare(t *testing.T) {
	app := setupApp(t)

	extra := `, "algorithms": ["simple", "regression", "holt-winters"], "options": {"actualData": [780000, 830000, 860000]}`
	resp, data := doRequest(t, app, http.MethodPost, "/v1/forecast/compare?rank=mape", fiber.MIMEApplicationJSON, body(extra))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var out models.CompareResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "mape", out.RankedBy)
	require.Len(t, out.Results, 2)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, "holt-winters", string(out.Skipped[0].Algorithm))
	assert.LessOrEqual(t, out.Results[0].Accuracy.MAPE, out.Results[1].Accuracy.MAPE)
	assert.NotNil(t, out.Results[0].ConfidenceIntervals)
}

func TestCompareUnknownRank(t *testing.T) {
	app := setupApp(t)

	resp, _ := doRequest(t, app, http.MethodPost, "/v1/forecast/compare?rank=best", fiber.MIMEApplicationJSON, body(""))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListAlgorithms(t *testing.T) {
	app := setupApp(t)

	resp, data := doRequest(t, app, http.MethodGet, "/v1/algorithms", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Algorithms []models.AlgorithmInfo `json:"algorithms"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Algorithms, 7)
	assert.Equal(t, "simple", string(out.Algorithms[0].Name))
}

func TestHealthRoutes(t *testing.T) {
	app := setupApp(t)

	resp, data := doRequest(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"status":"healthy"`)

	resp, data = doRequest(t, app, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"algorithms":7`)
}

func TestUnknownRouteUsesErrorHandler(t *testing.T) {
	app := setupApp(t)

	resp, data := doRequest(t, app, http.MethodGet, "/v2/forecast", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var e models.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, http.StatusNotFound, e.Code)
}
