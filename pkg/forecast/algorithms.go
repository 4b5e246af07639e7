package forecast

import (
	"fmt"
	"math"

	"forecastengine/pkg/decompose"
)

// Algorithm names a forecasting method.
type Algorithm string

const (
	AlgorithmSimple               Algorithm = "simple"
	AlgorithmMovingAverage        Algorithm = "moving-average"
	AlgorithmExponentialSmoothing Algorithm = "exponential-smoothing"
	AlgorithmSeasonalAdjustment   Algorithm = "seasonal-adjustment"
	AlgorithmRegression           Algorithm = "regression"
	AlgorithmARIMA                Algorithm = "arima"
	AlgorithmHoltWinters          Algorithm = "holt-winters"
)

// Algorithms lists every supported algorithm in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmSimple,
		AlgorithmMovingAverage,
		AlgorithmExponentialSmoothing,
		AlgorithmSeasonalAdjustment,
		AlgorithmRegression,
		AlgorithmARIMA,
		AlgorithmHoltWinters,
	}
}

func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmSimple, AlgorithmMovingAverage, AlgorithmExponentialSmoothing,
		AlgorithmSeasonalAdjustment, AlgorithmRegression, AlgorithmARIMA, AlgorithmHoltWinters:
		return true
	}
	return false
}

// Seasonal reports whether the algorithm needs a seasonal decomposition.
func (a Algorithm) Seasonal() bool {
	switch a {
	case AlgorithmSeasonalAdjustment, AlgorithmHoltWinters:
		return true
	case AlgorithmSimple, AlgorithmMovingAverage, AlgorithmExponentialSmoothing,
		AlgorithmRegression, AlgorithmARIMA:
		return false
	}
	return false
}

// algorithmInput is what every algorithm sees. The working series is
// history followed by the projected values; algorithms return one value per
// projected period.
type algorithmInput struct {
	projected  []float64
	history    []float64
	components *decompose.Components
	opts       Options
}

func (in algorithmInput) combined() []float64 {
	out := make([]float64, 0, len(in.history)+len(in.projected))
	out = append(out, in.history...)
	return append(out, in.projected...)
}

func runAlgorithm(alg Algorithm, in algorithmInput) ([]float64, error) {
	switch alg {
	case AlgorithmSimple:
		return simpleForecast(in), nil
	case AlgorithmMovingAverage:
		return movingAverageForecast(in), nil
	case AlgorithmExponentialSmoothing:
		return exponentialSmoothingForecast(in), nil
	case AlgorithmSeasonalAdjustment:
		return seasonalAdjustmentForecast(in)
	case AlgorithmRegression:
		return regressionForecast(in)
	case AlgorithmARIMA:
		return arimaForecast(in)
	case AlgorithmHoltWinters:
		return holtWintersForecast(in)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, alg)
}

func simpleForecast(in algorithmInput) []float64 {
	out := make([]float64, len(in.projected))
	copy(out, in.projected)
	return out
}

// movingAverageForecast returns the trailing mean of the last Window points
// ending at each projected position.
func movingAverageForecast(in algorithmInput) []float64 {
	series := in.combined()
	offset := len(in.history)
	out := make([]float64, len(in.projected))

	for j := range out {
		k := offset + j
		start := max(0, k-in.opts.Window+1)
		sum := 0.0
		for _, v := range series[start : k+1] {
			sum += v
		}
		out[j] = sum / float64(k+1-start)
	}
	return out
}

// exponentialSmoothingForecast returns the smoothed level at each projected
// position: level = alpha*x + (1-alpha)*level.
func exponentialSmoothingForecast(in algorithmInput) []float64 {
	series := in.combined()
	offset := len(in.history)
	out := make([]float64, len(in.projected))
	alpha := in.opts.Alpha

	level := series[0]
	for k, x := range series {
		if k > 0 {
			level = alpha*x + (1-alpha)*level
		}
		if k >= offset {
			out[k-offset] = level
		}
	}
	return out
}

// seasonalAdjustmentForecast passes the projection through; the orchestrator
// applies the seasonal indices afterwards.
func seasonalAdjustmentForecast(in algorithmInput) ([]float64, error) {
	if err := requireSeasonalHistory(in); err != nil {
		return nil, err
	}
	return simpleForecast(in), nil
}

// regressionForecast fits an ordinary least squares line over the working
// series and evaluates it at the projected positions.
func regressionForecast(in algorithmInput) ([]float64, error) {
	series := in.combined()
	n := len(series)
	if n < 2 {
		return nil, fmt.Errorf("%w: regression needs at least 2 points, got %d", ErrInsufficientData, n)
	}

	meanX := float64(n-1) / 2
	meanY := 0.0
	for _, v := range series {
		meanY += v
	}
	meanY /= float64(n)

	var sxy, sxx float64
	for i, v := range series {
		dx := float64(i) - meanX
		sxy += dx * (v - meanY)
		sxx += dx * dx
	}
	slope := sxy / sxx
	intercept := meanY - slope*meanX

	offset := len(in.history)
	out := make([]float64, len(in.projected))
	for j := range out {
		out[j] = intercept + slope*float64(offset+j)
	}
	return out, nil
}

// arimaForecast is a one-step ARIMA(1,1,0) predictor. Drift and the AR
// coefficient are moment estimates from the first differences.
func arimaForecast(in algorithmInput) ([]float64, error) {
	series := in.combined()
	n := len(series)
	if n < 3 {
		return nil, fmt.Errorf("%w: arima needs at least 3 points, got %d", ErrInsufficientData, n)
	}

	diffs := make([]float64, n-1)
	drift := 0.0
	for k := 1; k < n; k++ {
		diffs[k-1] = series[k] - series[k-1]
		drift += diffs[k-1]
	}
	drift /= float64(len(diffs))

	var num, den float64
	for k := range diffs {
		d := diffs[k] - drift
		den += d * d
		if k > 0 {
			num += d * (diffs[k-1] - drift)
		}
	}
	phi := 0.0
	if den > 0 {
		phi = math.Max(-0.99, math.Min(0.99, num/den))
	}

	offset := len(in.history)
	out := make([]float64, len(in.projected))
	for j := range out {
		k := offset + j
		if k < 2 {
			out[j] = series[k]
			continue
		}
		last := series[k-1] - series[k-2]
		out[j] = series[k-1] + drift + phi*(last-drift)
	}
	return out, nil
}

// holtWintersForecast runs triple exponential smoothing with fixed
// constants over the working series and returns the one-step-ahead
// predictions at the projected positions. Seasonal state starts from the
// decomposition indices of the history.
func holtWintersForecast(in algorithmInput) ([]float64, error) {
	if err := requireSeasonalHistory(in); err != nil {
		return nil, err
	}

	period := in.opts.SeasonalPeriod
	alpha, beta, gamma := in.opts.Alpha, in.opts.Beta, in.opts.Gamma
	multiplicative := in.opts.DecompositionMethod == decompose.Multiplicative

	season := make([]float64, period)
	copy(season, in.components.Indices)

	first, second := mean(in.history[:period]), mean(in.history[period:2*period])
	level := first
	trend := (second - first) / float64(period)

	series := in.combined()
	offset := len(in.history)
	out := make([]float64, len(in.projected))

	for k, x := range series {
		s := season[k%period]
		var pred float64
		if multiplicative {
			pred = (level + trend) * s
		} else {
			pred = level + trend + s
		}
		if k >= offset {
			out[k-offset] = pred
		}

		prevLevel := level
		if multiplicative {
			deseasoned := x
			if s != 0 {
				deseasoned = x / s
			}
			level = alpha*deseasoned + (1-alpha)*(level+trend)
			if level != 0 {
				season[k%period] = gamma*(x/level) + (1-gamma)*s
			}
		} else {
			level = alpha*(x-s) + (1-alpha)*(level+trend)
			season[k%period] = gamma*(x-level) + (1-gamma)*s
		}
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}
	return out, nil
}

func requireSeasonalHistory(in algorithmInput) error {
	need := 2 * in.opts.SeasonalPeriod
	if len(in.history) < need || !in.components.Decomposed() {
		return fmt.Errorf("%w: need %d historical points for seasonal period %d, got %d",
			ErrInsufficientHistory, need, in.opts.SeasonalPeriod, len(in.history))
	}
	return nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
