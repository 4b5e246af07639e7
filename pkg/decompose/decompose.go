package decompose

import (
	"fmt"
	"math"
)

// Method selects how trend and seasonal components combine.
type Method string

const (
	Multiplicative Method = "multiplicative" // Y = T * S + R
	Additive       Method = "additive"       // Y = T + S + R
)

// Valid reports whether m is a known decomposition method.
func (m Method) Valid() bool {
	switch m {
	case Multiplicative, Additive:
		return true
	}
	return false
}

// ParseMethod maps a method name to a Method. The empty string selects
// Multiplicative.
func ParseMethod(name string) (Method, error) {
	if name == "" {
		return Multiplicative, nil
	}
	m := Method(name)
	if !m.Valid() {
		return "", fmt.Errorf("unknown decomposition method %q", name)
	}
	return m, nil
}

// Components represents the decomposition of a series. All four series have
// the same length as the input.
type Components struct {
	Original Series `json:"original"`
	Trend    Series `json:"trend"`
	Seasonal Series `json:"seasonal"`
	Residual Series `json:"residual"`

	// Indices holds one seasonal index per phase. It is nil when the series
	// was too short to decompose.
	Indices Series `json:"indices,omitempty"`
	Period  int    `json:"period"`
	Method  Method `json:"method"`
}

// Decomposed reports whether the seasonal indices were estimated.
func (c *Components) Decomposed() bool {
	return c != nil && len(c.Indices) > 0
}

// Decompose performs classical seasonal decomposition of series.
// The trend is a centered moving average with a window of period points.
// Odd windows are a plain mean. Even windows use the 2xm average: period+1
// points with the two end points at half weight, so the result is not a
// simple moving average for even periods.
func Decompose(series []float64, period int, method Method) Components {
	n := len(series)
	original := make(Series, n)
	copy(original, series)

	if method != Additive {
		method = Multiplicative
	}

	result := Components{
		Original: original,
		Period:   period,
		Method:   method,
	}

	if period < 1 || n < 2*period {
		result.Trend = NaNSeries(n)
		result.Seasonal = NaNSeries(n)
		result.Residual = NaNSeries(n)
		return result
	}

	// Step 1: trend
	trend := movingAverageTrend(series, period)

	// Step 2: detrend
	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			detrended[i] = math.NaN()
		case method == Multiplicative:
			if trend[i] == 0 {
				detrended[i] = math.NaN()
			} else {
				detrended[i] = series[i] / trend[i]
			}
		default:
			detrended[i] = series[i] - trend[i]
		}
	}

	// Step 3: one index per phase
	indices := make(Series, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		if math.IsNaN(detrended[i]) {
			continue
		}
		indices[i%period] += detrended[i]
		counts[i%period]++
	}
	for p := 0; p < period; p++ {
		switch {
		case counts[p] > 0:
			indices[p] /= float64(counts[p])
		case method == Multiplicative:
			indices[p] = 1
		default:
			indices[p] = 0
		}
	}

	if method == Multiplicative {
		mean := 0.0
		for _, v := range indices {
			mean += v
		}
		mean /= float64(period)
		if mean != 0 {
			for p := range indices {
				indices[p] /= mean
			}
		}
	}

	// Step 4: tile indices over the series
	seasonal := make(Series, n)
	for i := 0; i < n; i++ {
		seasonal[i] = indices[i%period]
	}

	// Step 5: residual
	residual := make(Series, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			residual[i] = math.NaN()
		case method == Multiplicative:
			residual[i] = series[i] - trend[i]*seasonal[i]
		default:
			residual[i] = series[i] - (trend[i] + seasonal[i])
		}
	}

	result.Trend = trend
	result.Seasonal = seasonal
	result.Residual = residual
	result.Indices = indices
	return result
}

// movingAverageTrend computes a centered moving average. Even windows use the
// 2xm average so the result stays centered on each point.
func movingAverageTrend(series []float64, window int) Series {
	n := len(series)
	trend := NaNSeries(n)
	half := window / 2

	if window%2 == 0 {
		for i := half; i < n-half; i++ {
			sum := 0.5*series[i-half] + 0.5*series[i+half]
			for j := i - half + 1; j < i+half; j++ {
				sum += series[j]
			}
			trend[i] = sum / float64(window)
		}
		return trend
	}

	for i := half; i < n-half; i++ {
		sum := 0.0
		for j := i - half; j <= i+half; j++ {
			sum += series[j]
		}
		trend[i] = sum / float64(window)
	}
	return trend
}
