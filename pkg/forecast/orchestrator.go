package forecast

import (
	"context"
	"fmt"
	"sort"

	"forecastengine/pkg/accuracy"
	"forecastengine/pkg/decompose"

	"golang.org/x/sync/errgroup"
)

// Orchestrator runs forecasting algorithms over a scenario and assembles
// their results.
type Orchestrator struct {
	maxParallel int
}

// NewOrchestrator returns an orchestrator that compares at most maxParallel
// algorithms at a time. Zero or less runs them one by one.
func NewOrchestrator(maxParallel int) *Orchestrator {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Orchestrator{maxParallel: maxParallel}
}

// SkippedAlgorithm records an algorithm that produced no result.
type SkippedAlgorithm struct {
	Algorithm Algorithm `json:"algorithm"`
	Reason    string    `json:"reason"`
	Err       error     `json:"-"`
}

// Comparison holds one result per successful algorithm, in request order.
type Comparison struct {
	Results []ForecastResult   `json:"results"`
	Skipped []SkippedAlgorithm `json:"skipped,omitempty"`
}

// RunOne projects the scenario and applies a single algorithm.
func (o *Orchestrator) RunOne(s Scenario, alg Algorithm, opts Options) (*ForecastResult, error) {
	if !alg.Valid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, alg)
	}
	opts, err := opts.normalize(s.PeriodType)
	if err != nil {
		return nil, err
	}
	return o.run(s, alg, opts)
}

// Run compares several algorithms on the same scenario. A malformed
// scenario or invalid options fail the whole call; an algorithm that cannot
// produce a result is recorded in Skipped and the rest still run.
func (o *Orchestrator) Run(ctx context.Context, s Scenario, algorithms []Algorithm, opts Options) (*Comparison, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("%w: no algorithms requested", ErrInvalidOptions)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.normalize(s.PeriodType)
	if err != nil {
		return nil, err
	}

	results := make([]*ForecastResult, len(algorithms))
	errs := make([]error, len(algorithms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxParallel)
	for i, alg := range algorithms {
		i, alg := i, alg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if !alg.Valid() {
				errs[i] = fmt.Errorf("%w %q", ErrUnknownAlgorithm, alg)
				return nil
			}
			results[i], errs[i] = o.run(s, alg, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := &Comparison{Results: make([]ForecastResult, 0, len(algorithms))}
	for i, alg := range algorithms {
		if errs[i] != nil {
			cmp.Skipped = append(cmp.Skipped, SkippedAlgorithm{
				Algorithm: alg,
				Reason:    errs[i].Error(),
				Err:       errs[i],
			})
			continue
		}
		cmp.Results = append(cmp.Results, *results[i])
	}
	return cmp, nil
}

func (o *Orchestrator) run(s Scenario, alg Algorithm, opts Options) (*ForecastResult, error) {
	projection, err := Project(s)
	if err != nil {
		return nil, err
	}
	projected := projection.Series(opts.Target)

	var components *decompose.Components
	if opts.SeasonallyAdjusted || alg.Seasonal() {
		source := opts.HistoricalData
		if len(source) == 0 {
			source = projected
		}
		c := decompose.Decompose(source, opts.SeasonalPeriod, opts.DecompositionMethod)
		components = &c
	}

	forecast, err := runAlgorithm(alg, algorithmInput{
		projected:  projected,
		history:    opts.HistoricalData,
		components: components,
		opts:       opts,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", alg, err)
	}

	adjusted := false
	if components != nil && alg != AlgorithmHoltWinters &&
		(opts.SeasonallyAdjusted || alg == AlgorithmSeasonalAdjustment) {
		forecast = decompose.Adjust(forecast, components.Seasonal, opts.DecompositionMethod)
		adjusted = components.Decomposed()
	}

	result := &ForecastResult{
		ScenarioID:         s.ID,
		ScenarioName:       s.Name,
		Algorithm:          alg,
		Target:             opts.Target,
		Periods:            projection.Periods,
		Totals:             projection.Totals,
		Forecast:           forecast,
		SeasonallyAdjusted: adjusted || alg == AlgorithmHoltWinters,
		Components:         components,
	}

	if len(opts.ActualData) > 0 {
		labels := opts.PeriodLabels
		if len(labels) == 0 {
			labels = projection.Labels()
		}
		metrics := accuracy.Evaluate(opts.ActualData, forecast)
		result.Accuracy = &metrics
		result.Variance = accuracy.AnalyzeVariance(opts.ActualData, forecast, labels)
	}

	return result, nil
}

// RankByMAPE returns a copy of results ordered by ascending MAPE. Results
// without accuracy metrics sort last; ties keep their original order.
func RankByMAPE(results []ForecastResult) []ForecastResult {
	ranked := make([]ForecastResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Accuracy, ranked[j].Accuracy
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.MAPE < b.MAPE
	})
	return ranked
}
