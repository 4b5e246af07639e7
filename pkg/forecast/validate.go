package forecast

import (
	"fmt"
	"math"
)

type itemKey struct {
	category Category
	id       string
}

// Validate reports the first malformed-scenario condition. Assumptions that
// match no line item are not an error.
func (s Scenario) Validate() error {
	if s.PeriodCount < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidPeriodCount, s.PeriodCount)
	}
	if !s.PeriodType.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidPeriodType, s.PeriodType)
	}

	items := make(map[itemKey]bool)
	for _, c := range []Category{CategoryRevenue, CategoryCostOfSales, CategoryExpense} {
		for _, it := range s.Baseline.items(c) {
			if !finite(it.Amount) {
				return fmt.Errorf("%w: line item %q", ErrInvalidAmount, it.ID)
			}
			items[itemKey{c, it.ID}] = true
		}
	}

	bound := make(map[itemKey]int)
	for _, a := range s.Assumptions {
		if !a.GrowthType.Valid() {
			return fmt.Errorf("%w %q in assumption %q", ErrInvalidGrowthType, a.GrowthType, a.ID)
		}
		if !finite(a.GrowthRate) {
			return fmt.Errorf("%w: growth rate of assumption %q", ErrInvalidAmount, a.ID)
		}
		for _, v := range a.ManualValues {
			if !finite(v) {
				return fmt.Errorf("%w: manual values of assumption %q", ErrInvalidAmount, a.ID)
			}
		}
		key := itemKey{a.Category, a.TargetItemID}
		if items[key] {
			bound[key]++
		}
	}

	// A manual assumption without values is ambiguous only when nothing
	// else drives the item.
	for _, a := range s.Assumptions {
		key := itemKey{a.Category, a.TargetItemID}
		if a.GrowthType == GrowthManual && a.ManualValues == nil && bound[key] == 1 {
			return fmt.Errorf("%w: assumption %q targets %s item %q", ErrManualValuesMissing, a.ID, a.Category, a.TargetItemID)
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
