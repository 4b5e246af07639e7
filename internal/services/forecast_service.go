package services

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"forecastengine/internal/config"
	"forecastengine/internal/models"
	"forecastengine/pkg/decompose"
	"forecastengine/pkg/forecast"

	"github.com/google/uuid"
)

// RankMAPE orders comparison results by ascending MAPE.
const RankMAPE = "mape"

var algorithmDescriptions = map[forecast.Algorithm]string{
	forecast.AlgorithmSimple:               "Projected scenario values, unchanged",
	forecast.AlgorithmMovingAverage:        "Trailing moving average over history and projection",
	forecast.AlgorithmExponentialSmoothing: "Single exponential smoothing with a fixed alpha",
	forecast.AlgorithmSeasonalAdjustment:   "Projection re-scaled by seasonal indices from history",
	forecast.AlgorithmRegression:           "Least-squares linear trend",
	forecast.AlgorithmARIMA:                "One-step ARIMA(1,1,0) with drift",
	forecast.AlgorithmHoltWinters:          "Holt-Winters triple smoothing with fixed constants",
}

// ForecastService coordinates projection, algorithm runs, confidence bounds
// and response caching.
type ForecastService struct {
	config       *config.Config
	orchestrator *forecast.Orchestrator
	runCache     *Cache[string, *models.ForecastResponse]
	compareCache *Cache[string, *models.CompareResponse]
	now          func() time.Time
}

func NewForecastService(cfg *config.Config) *ForecastService {
	return &ForecastService{
		config:       cfg,
		orchestrator: forecast.NewOrchestrator(cfg.MaxParallelRuns),
		runCache:     NewCache[string, *models.ForecastResponse](cfg.CacheTTL),
		compareCache: NewCache[string, *models.CompareResponse](cfg.CacheTTL),
		now:          time.Now,
	}
}

// Forecast runs a single algorithm. An empty algorithm means simple.
func (s *ForecastService) Forecast(ctx context.Context, req models.ForecastRequest) (*models.ForecastResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Algorithm == "" {
		req.Algorithm = forecast.AlgorithmSimple
	}
	z, confidence, err := s.zScore(req.Confidence)
	if err != nil {
		return nil, err
	}
	req.Confidence = confidence
	s.defaultStartDate(&req.Scenario)

	anonymous := req.Scenario.ID == ""
	cacheKey := s.generateCacheKey("run", req, "")
	if cached, found := s.runCache.Get(cacheKey); found && cacheKey != "" {
		hit := *cached
		hit.CacheHit = true
		return stampForecast(&hit, anonymous), nil
	}

	result, err := s.orchestrator.RunOne(req.Scenario, req.Algorithm, req.Options)
	if err != nil {
		return nil, err
	}

	response := &models.ForecastResponse{
		RunID:       uuid.NewString(),
		Result:      withConfidence(result, z, confidence),
		GeneratedAt: s.now(),
	}

	if cacheKey != "" {
		s.runCache.Set(cacheKey, response)
	}
	return stampForecast(response, anonymous), nil
}

// Compare runs several algorithms on the same scenario. No algorithms means
// all of them. rank is empty or RankMAPE.
func (s *ForecastService) Compare(ctx context.Context, req models.ForecastRequest, rank string) (*models.CompareResponse, error) {
	if rank != "" && rank != RankMAPE {
		return nil, fmt.Errorf("%w: unknown ranking %q", forecast.ErrInvalidOptions, rank)
	}
	if len(req.Algorithms) == 0 {
		req.Algorithms = forecast.Algorithms()
	}
	z, confidence, err := s.zScore(req.Confidence)
	if err != nil {
		return nil, err
	}
	req.Confidence = confidence
	s.defaultStartDate(&req.Scenario)

	anonymous := req.Scenario.ID == ""
	cacheKey := s.generateCacheKey("compare", req, rank)
	if cached, found := s.compareCache.Get(cacheKey); found && cacheKey != "" {
		hit := *cached
		hit.CacheHit = true
		return stampCompare(&hit, anonymous), nil
	}

	cmp, err := s.orchestrator.Run(ctx, req.Scenario, req.Algorithms, req.Options)
	if err != nil {
		return nil, err
	}

	for _, skipped := range cmp.Skipped {
		log.Printf("⚠️  Skipped %s for scenario %s: %s", skipped.Algorithm, req.Scenario.ID, skipped.Reason)
	}

	results := make([]forecast.ForecastResult, len(cmp.Results))
	for i := range cmp.Results {
		results[i] = *withConfidence(&cmp.Results[i], z, confidence)
	}
	if rank == RankMAPE {
		results = forecast.RankByMAPE(results)
	}

	response := &models.CompareResponse{
		RunID:       uuid.NewString(),
		Results:     results,
		Skipped:     cmp.Skipped,
		RankedBy:    rank,
		GeneratedAt: s.now(),
	}

	if cacheKey != "" {
		s.compareCache.Set(cacheKey, response)
	}
	return stampCompare(response, anonymous), nil
}

// Algorithms lists every supported algorithm in canonical order.
func (s *ForecastService) Algorithms() []models.AlgorithmInfo {
	all := forecast.Algorithms()
	infos := make([]models.AlgorithmInfo, len(all))
	for i, alg := range all {
		infos[i] = models.AlgorithmInfo{
			Name:        alg,
			Seasonal:    alg.Seasonal(),
			Description: algorithmDescriptions[alg],
		}
	}
	return infos
}

// CachedResponses counts live cache entries across both caches.
func (s *ForecastService) CachedResponses() int {
	return s.runCache.Len() + s.compareCache.Len()
}

// Close stops the cache janitors.
func (s *ForecastService) Close() {
	s.runCache.Close()
	s.compareCache.Close()
}

func (s *ForecastService) zScore(requested float64) (float64, float64, error) {
	confidence := requested
	if confidence == 0 {
		confidence = s.config.DefaultConfidence
	}
	z, ok := config.ZScore(confidence)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unsupported confidence level %v", forecast.ErrInvalidOptions, requested)
	}
	return z, confidence, nil
}

// defaultStartDate starts undated scenarios on the first day of the current
// month.
func (s *ForecastService) defaultStartDate(sc *forecast.Scenario) {
	if !sc.StartDate.IsZero() {
		return
	}
	now := s.now().UTC()
	sc.StartDate = forecast.NewDate(now.Year(), now.Month(), 1)
}

// Scenarios sent without an ID are run and cached without one. Each
// response then gets its own uuid, so cache hits never share a scenario ID.
func stampForecast(resp *models.ForecastResponse, anonymous bool) *models.ForecastResponse {
	if !anonymous || resp.Result == nil {
		return resp
	}
	out := *resp
	result := *resp.Result
	result.ScenarioID = uuid.NewString()
	out.Result = &result
	return &out
}

func stampCompare(resp *models.CompareResponse, anonymous bool) *models.CompareResponse {
	if !anonymous {
		return resp
	}
	id := uuid.NewString()
	out := *resp
	out.Results = make([]forecast.ForecastResult, len(resp.Results))
	for i, r := range resp.Results {
		r.ScenarioID = id
		out.Results[i] = r
	}
	return &out
}

// generateCacheKey hashes the normalized request. An empty key disables
// caching, either by configuration or because the request does not encode.
func (s *ForecastService) generateCacheKey(kind string, req models.ForecastRequest, rank string) string {
	if s.config.CacheTTL <= 0 {
		return ""
	}
	data, err := json.Marshal(struct {
		Kind    string                 `json:"kind"`
		Rank    string                 `json:"rank"`
		Request models.ForecastRequest `json:"request"`
	}{kind, rank, req})
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}

// withConfidence returns a copy of r carrying forecast ± z×RMSE bounds. r is
// returned unchanged when it has no accuracy metrics.
func withConfidence(r *forecast.ForecastResult, z, confidence float64) *forecast.ForecastResult {
	if r.Accuracy == nil {
		return r
	}
	out := *r
	margin := z * r.Accuracy.RMSE
	lower := make(decompose.Series, len(r.Forecast))
	upper := make(decompose.Series, len(r.Forecast))
	for i, v := range r.Forecast {
		if math.IsNaN(v) {
			lower[i], upper[i] = math.NaN(), math.NaN()
			continue
		}
		lower[i] = v - margin
		upper[i] = v + margin
	}
	out.ConfidenceIntervals = &forecast.ConfidenceIntervals{
		Lower:      lower,
		Upper:      upper,
		Confidence: confidence,
	}
	return &out
}
