// Package forecast projects a baseline financial statement forward under a
// set of growth assumptions and runs forecasting algorithms over the result.
//
// A Scenario is expanded period by period with Project: every period gets
// its own copy of the baseline line items, each matching GrowthAssumption
// rewrites one item's amount, and gross profit and net income are derived
// from the items. Growth is always measured from the baseline value:
//
//	percentage: b * (1 + r/100)^(i+1)
//	linear:     b + b*r/100*(i+1)
//	manual:     manualValues[i], or b when i is out of range
//
// The Orchestrator turns a projection into a ForecastResult for one of the
// named algorithms, optionally decomposing history to re-apply seasonal
// indices and scoring the forecast against actual values:
//
//	o := forecast.NewOrchestrator(4)
//	cmp, err := o.Run(ctx, scenario, forecast.Algorithms(), forecast.Options{
//	    SeasonallyAdjusted: true,
//	    HistoricalData:     history,
//	    ActualData:         actuals,
//	})
//
// Algorithms that fail inside a comparison are listed in Comparison.Skipped;
// only malformed scenarios and options fail the call.
package forecast
