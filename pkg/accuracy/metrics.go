// Package accuracy measures how far a forecast landed from realised values.
package accuracy

import "math"

// Metrics holds forecast accuracy statistics. MAPE is a percentage.
type Metrics struct {
	MAE  float64  `json:"mae"`
	MAPE float64  `json:"mape"`
	RMSE float64  `json:"rmse"`
	R2   *float64 `json:"r2,omitempty"`
}

// Evaluate compares predicted against actual over the aligned prefix of the
// two series. Empty input yields zero metrics.
//
// A point whose actual value is zero contributes 0 to the MAPE sum but still
// counts toward n, so MAPE is understated when zero actuals are common.
func Evaluate(actual, predicted []float64) Metrics {
	n := min(len(actual), len(predicted))
	if n == 0 {
		return Metrics{}
	}

	var sumAbs, sumSq, sumPct, sumActual float64
	for i := 0; i < n; i++ {
		err := actual[i] - predicted[i]
		sumAbs += math.Abs(err)
		sumSq += err * err
		if actual[i] != 0 {
			sumPct += math.Abs(err) / math.Abs(actual[i])
		}
		sumActual += actual[i]
	}

	m := Metrics{
		MAE:  sumAbs / float64(n),
		MAPE: 100 * sumPct / float64(n),
		RMSE: math.Sqrt(sumSq / float64(n)),
	}

	if n >= 2 {
		mean := sumActual / float64(n)
		ssTot := 0.0
		for i := 0; i < n; i++ {
			d := actual[i] - mean
			ssTot += d * d
		}
		if ssTot > 0 {
			r2 := 1 - sumSq/ssTot
			m.R2 = &r2
		}
	}

	return m
}
