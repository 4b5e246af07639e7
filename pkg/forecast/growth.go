package forecast

import "math"

// ApplyGrowth returns the value of baseline in period periodIndex (0-based)
// under assumption a. Percentage and linear growth are measured from the
// baseline, never from the previous period's projected value.
func ApplyGrowth(baseline float64, a GrowthAssumption, periodIndex int) float64 {
	steps := float64(periodIndex + 1)
	rate := a.GrowthRate / 100

	switch a.GrowthType {
	case GrowthPercentage:
		return baseline * math.Pow(1+rate, steps)
	case GrowthLinear:
		return baseline + baseline*rate*steps
	case GrowthManual:
		if periodIndex >= 0 && periodIndex < len(a.ManualValues) {
			return a.ManualValues[periodIndex]
		}
		return baseline
	}
	return baseline
}
