package decompose

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seasonalSeries builds a trending series with a repeating multiplicative
// pattern of the given period.
func seasonalSeries(n, period int) []float64 {
	values := make([]float64, n)
	for i := range values {
		base := 1000 + 25*float64(i)
		factor := 1 + 0.2*math.Sin(2*math.Pi*float64(i%period)/float64(period))
		values[i] = base * factor
	}
	return values
}

func TestDecomposeShortSeries(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	c := Decompose(series, 12, Multiplicative)

	require.Len(t, c.Original, len(series))
	assert.Equal(t, Series(series), c.Original)
	for i := range series {
		assert.True(t, math.IsNaN(c.Trend[i]), "trend[%d]", i)
		assert.True(t, math.IsNaN(c.Seasonal[i]), "seasonal[%d]", i)
		assert.True(t, math.IsNaN(c.Residual[i]), "residual[%d]", i)
	}
	assert.False(t, c.Decomposed())
}

func TestDecomposeMultiplicativeNormalization(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		period int
	}{
		{"monthly even period", 36, 12},
		{"quarterly", 16, 4},
		{"odd period", 21, 7},
		{"exactly two periods", 24, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Decompose(seasonalSeries(tt.n, tt.period), tt.period, Multiplicative)
			require.Len(t, c.Indices, tt.period)

			mean := 0.0
			for _, v := range c.Indices {
				mean += v
			}
			mean /= float64(tt.period)
			assert.InDelta(t, 1.0, mean, 1e-9)
		})
	}
}

func TestDecomposeTrendEdges(t *testing.T) {
	series := seasonalSeries(36, 12)
	c := Decompose(series, 12, Additive)

	for i := 0; i < 6; i++ {
		assert.True(t, math.IsNaN(c.Trend[i]), "leading trend[%d]", i)
		assert.True(t, math.IsNaN(c.Trend[len(series)-1-i]), "trailing trend[%d]", len(series)-1-i)
		assert.True(t, math.IsNaN(c.Residual[i]))
	}
	for i := 6; i < len(series)-6; i++ {
		assert.False(t, math.IsNaN(c.Trend[i]), "trend[%d]", i)
	}
	assert.Equal(t, 36, c.Seasonal.Defined())
}

func TestDecomposeOddWindowTrend(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6}
	c := Decompose(series, 3, Additive)

	assert.True(t, math.IsNaN(c.Trend[0]))
	assert.InDelta(t, 2.0, c.Trend[1], 1e-12)
	assert.InDelta(t, 5.0, c.Trend[4], 1e-12)
	assert.True(t, math.IsNaN(c.Trend[5]))
}

func TestDecomposeEvenWindowTrend(t *testing.T) {
	series := []float64{4, 0, 0, 0, 8, 0, 0, 0}
	c := Decompose(series, 4, Additive)

	assert.True(t, math.IsNaN(c.Trend[1]))
	// End points of the five-point window carry half weight.
	assert.InDelta(t, (0.5*4+0.5*8)/4, c.Trend[2], 1e-12)
	assert.InDelta(t, 8.0/4, c.Trend[5], 1e-12)
	assert.True(t, math.IsNaN(c.Trend[6]))
}

func TestDecomposeAdditiveReconstruction(t *testing.T) {
	series := seasonalSeries(48, 12)
	c := Decompose(series, 12, Additive)

	for i := range series {
		if math.IsNaN(c.Trend[i]) {
			continue
		}
		assert.InDelta(t, series[i], c.Trend[i]+c.Seasonal[i]+c.Residual[i], 1e-9)
	}
}

func TestDecomposeMultiplicativeResidual(t *testing.T) {
	series := seasonalSeries(48, 12)
	c := Decompose(series, 12, Multiplicative)

	for i := range series {
		if math.IsNaN(c.Trend[i]) {
			continue
		}
		assert.InDelta(t, series[i]-c.Trend[i]*c.Seasonal[i], c.Residual[i], 1e-9)
	}
}

func TestDecomposeSeasonalTiling(t *testing.T) {
	c := Decompose(seasonalSeries(30, 5), 5, Multiplicative)
	for i := range c.Seasonal {
		assert.Equal(t, c.Indices[i%5], c.Seasonal[i])
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, Multiplicative, m)

	m, err = ParseMethod("additive")
	require.NoError(t, err)
	assert.Equal(t, Additive, m)

	_, err = ParseMethod("stl")
	assert.Error(t, err)
}

func TestSeriesJSON(t *testing.T) {
	s := Series{1.5, math.NaN(), math.Inf(1), -2}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5,null,null,-2]`, string(data))

	var back Series
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 4)
	assert.Equal(t, 1.5, back[0])
	assert.True(t, math.IsNaN(back[1]))
	assert.True(t, math.IsNaN(back[2]))
	assert.Equal(t, -2.0, back[3])
}

func TestComponentsJSONWithNaN(t *testing.T) {
	c := Decompose([]float64{1, 2, 3}, 4, Additive)
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"trend":[null,null,null]`)
}
