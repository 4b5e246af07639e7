package decompose

import "math"

// Adjust re-applies a seasonal component to a forecast. Point i is combined
// with the (i mod L)-th defined seasonal entry, where L is the number of
// non-NaN entries. A component with no defined entries leaves the forecast
// unchanged.
func Adjust(forecast, seasonal []float64, method Method) []float64 {
	out := make([]float64, len(forecast))
	copy(out, forecast)

	defined := make([]float64, 0, len(seasonal))
	for _, v := range seasonal {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return out
	}

	for i := range out {
		factor := defined[i%len(defined)]
		if method == Additive {
			out[i] += factor
		} else {
			out[i] *= factor
		}
	}
	return out
}
