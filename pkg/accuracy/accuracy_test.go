package accuracy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEmpty(t *testing.T) {
	assert.Equal(t, Metrics{}, Evaluate(nil, nil))
	assert.Equal(t, Metrics{}, Evaluate([]float64{1, 2}, nil))
}

func TestEvaluateKnownValues(t *testing.T) {
	actual := []float64{100, 200, 300}
	predicted := []float64{110, 190, 330}

	m := Evaluate(actual, predicted)

	assert.InDelta(t, 50.0/3, m.MAE, 1e-9)
	assert.InDelta(t, math.Sqrt((100+100+900)/3.0), m.RMSE, 1e-9)
	assert.InDelta(t, 100*(0.1+0.05+0.1)/3, m.MAPE, 1e-9)
	require.NotNil(t, m.R2)
	// SStot = 20000, SSres = 1100
	assert.InDelta(t, 1-1100.0/20000, *m.R2, 1e-9)
}

func TestEvaluateZeroActualStillCounts(t *testing.T) {
	m := Evaluate([]float64{0, 100}, []float64{10, 90})

	// Only the second point contributes to the percentage sum, but n stays 2.
	assert.InDelta(t, 5.0, m.MAPE, 1e-9)
	assert.InDelta(t, 10.0, m.MAE, 1e-9)
}

func TestEvaluateTruncatesToShortest(t *testing.T) {
	m := Evaluate([]float64{10, 20, 30, 40}, []float64{10, 20})
	assert.Zero(t, m.MAE)
	assert.Zero(t, m.RMSE)
	require.NotNil(t, m.R2)
	assert.InDelta(t, 1.0, *m.R2, 1e-12)
}

func TestEvaluateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		actual    []float64
		predicted []float64
	}{
		{"over forecast", []float64{1, 2, 3}, []float64{5, 6, 7}},
		{"under forecast", []float64{5, 6, 7}, []float64{1, 2, 3}},
		{"negative actuals", []float64{-10, -20}, []float64{-12, -15}},
		{"single point", []float64{42}, []float64{40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Evaluate(tt.actual, tt.predicted)
			assert.GreaterOrEqual(t, m.MAE, 0.0)
			assert.GreaterOrEqual(t, m.RMSE, 0.0)
			assert.GreaterOrEqual(t, m.MAPE, 0.0)
		})
	}
}

func TestEvaluateR2CanBeNegative(t *testing.T) {
	m := Evaluate([]float64{1, 2, 3}, []float64{30, -20, 10})
	require.NotNil(t, m.R2)
	assert.Less(t, *m.R2, 0.0)
}

func TestEvaluateR2AbsentForConstantActuals(t *testing.T) {
	m := Evaluate([]float64{5, 5, 5}, []float64{4, 5, 6})
	assert.Nil(t, m.R2)
}
