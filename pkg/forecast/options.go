package forecast

import (
	"fmt"

	"forecastengine/pkg/decompose"
)

// Defaults applied by Options when a field is left zero.
const (
	DefaultWindow = 3
	DefaultAlpha  = 0.3
	DefaultBeta   = 0.1
	DefaultGamma  = 0.1
)

// Options configures a single algorithm run or a comparison.
type Options struct {
	SeasonallyAdjusted  bool             `json:"seasonallyAdjusted" yaml:"seasonallyAdjusted"`
	SeasonalPeriod      int              `json:"seasonalPeriod,omitempty" yaml:"seasonalPeriod,omitempty"`
	DecompositionMethod decompose.Method `json:"decompositionMethod,omitempty" yaml:"decompositionMethod,omitempty"`
	HistoricalData      []float64        `json:"historicalData,omitempty" yaml:"historicalData,omitempty"`
	ActualData          []float64        `json:"actualData,omitempty" yaml:"actualData,omitempty"`
	PeriodLabels        []string         `json:"periodLabels,omitempty" yaml:"periodLabels,omitempty"`

	// Target is the per-period figure being forecast. Defaults to revenue.
	Target Metric `json:"target,omitempty" yaml:"target,omitempty"`

	// Window is the moving-average length.
	Window int `json:"window,omitempty" yaml:"window,omitempty"`

	// Smoothing constants for exponential smoothing and Holt-Winters. They
	// are fixed inputs, never fitted.
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta  float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	Gamma float64 `json:"gamma,omitempty" yaml:"gamma,omitempty"`
}

// DefaultSeasonalPeriod returns the number of periods in one year.
func DefaultSeasonalPeriod(p PeriodType) int {
	switch p {
	case PeriodMonthly:
		return 12
	case PeriodQuarterly:
		return 4
	case PeriodYearly:
		return 1
	}
	return 1
}

// normalize fills defaults and checks ranges.
func (o Options) normalize(pt PeriodType) (Options, error) {
	if o.SeasonalPeriod == 0 {
		o.SeasonalPeriod = DefaultSeasonalPeriod(pt)
	}
	if o.SeasonalPeriod < 1 {
		return o, fmt.Errorf("%w: seasonal period %d", ErrInvalidOptions, o.SeasonalPeriod)
	}

	method, err := decompose.ParseMethod(string(o.DecompositionMethod))
	if err != nil {
		return o, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	o.DecompositionMethod = method

	if o.Target == "" {
		o.Target = MetricRevenue
	}
	if !o.Target.Valid() {
		return o, fmt.Errorf("%w: unknown target %q", ErrInvalidOptions, o.Target)
	}

	if o.Window == 0 {
		o.Window = DefaultWindow
	}
	if o.Window < 1 {
		return o, fmt.Errorf("%w: window %d", ErrInvalidOptions, o.Window)
	}

	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.Alpha < 0 || o.Alpha > 1 {
		return o, fmt.Errorf("%w: alpha %v outside (0, 1]", ErrInvalidOptions, o.Alpha)
	}
	if o.Beta == 0 {
		o.Beta = DefaultBeta
	}
	if o.Gamma == 0 {
		o.Gamma = DefaultGamma
	}
	if o.Beta < 0 || o.Beta > 1 || o.Gamma < 0 || o.Gamma > 1 {
		return o, fmt.Errorf("%w: beta and gamma must be within [0, 1]", ErrInvalidOptions)
	}
	if !finite(o.Alpha) || !finite(o.Beta) || !finite(o.Gamma) {
		return o, fmt.Errorf("%w: smoothing constants must be finite", ErrInvalidOptions)
	}

	// Non-finite points would turn accuracy metrics into NaN.
	if i, ok := firstNonFinite(o.HistoricalData); ok {
		return o, fmt.Errorf("%w: historical value %d is not finite", ErrInvalidOptions, i)
	}
	if i, ok := firstNonFinite(o.ActualData); ok {
		return o, fmt.Errorf("%w: actual value %d is not finite", ErrInvalidOptions, i)
	}

	return o, nil
}

func firstNonFinite(values []float64) (int, bool) {
	for i, v := range values {
		if !finite(v) {
			return i, true
		}
	}
	return 0, false
}
