package accuracy

import "math"

// Impact tiers a variance by the size of its percentage deviation.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Thresholds are exclusive: exactly 20% is medium, exactly 10% is low.
const (
	HighImpactThreshold   = 20.0
	MediumImpactThreshold = 10.0
)

// VarianceRecord compares one period's forecast with its realised value.
type VarianceRecord struct {
	PeriodLabel     string  `json:"periodLabel"`
	Predicted       float64 `json:"predicted"`
	Actual          float64 `json:"actual"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variancePercent"`
	Impact          Impact  `json:"impact"`
}

// ClassifyImpact maps a variance percentage to its impact tier.
func ClassifyImpact(variancePercent float64) Impact {
	abs := math.Abs(variancePercent)
	switch {
	case abs > HighImpactThreshold:
		return ImpactHigh
	case abs > MediumImpactThreshold:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// AnalyzeVariance builds one record per period, truncated to the shortest of
// the three inputs.
func AnalyzeVariance(actual, predicted []float64, labels []string) []VarianceRecord {
	n := min(len(actual), len(predicted), len(labels))
	records := make([]VarianceRecord, 0, n)

	for i := 0; i < n; i++ {
		variance := actual[i] - predicted[i]
		pct := 0.0
		if actual[i] != 0 {
			pct = 100 * variance / actual[i]
		}
		records = append(records, VarianceRecord{
			PeriodLabel:     labels[i],
			Predicted:       predicted[i],
			Actual:          actual[i],
			Variance:        variance,
			VariancePercent: pct,
			Impact:          ClassifyImpact(pct),
		})
	}

	return records
}

// Summary counts records per impact tier.
func Summary(records []VarianceRecord) map[Impact]int {
	counts := map[Impact]int{ImpactLow: 0, ImpactMedium: 0, ImpactHigh: 0}
	for _, r := range records {
		counts[r.Impact]++
	}
	return counts
}
