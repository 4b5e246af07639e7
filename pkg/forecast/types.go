package forecast

import (
	"forecastengine/pkg/accuracy"
	"forecastengine/pkg/decompose"
)

// Category names the statement section a line item belongs to.
type Category string

const (
	CategoryRevenue     Category = "revenue"
	CategoryCostOfSales Category = "costOfSales"
	CategoryExpense     Category = "expense"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRevenue, CategoryCostOfSales, CategoryExpense:
		return true
	}
	return false
}

// GrowthType selects the growth law applied by an assumption.
type GrowthType string

const (
	GrowthPercentage GrowthType = "percentage"
	GrowthLinear     GrowthType = "linear"
	GrowthManual     GrowthType = "manual"
)

func (g GrowthType) Valid() bool {
	switch g {
	case GrowthPercentage, GrowthLinear, GrowthManual:
		return true
	}
	return false
}

// PeriodType is the calendar step between two projected periods.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodYearly    PeriodType = "yearly"
)

func (p PeriodType) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// Metric selects which per-period figure the algorithms forecast.
type Metric string

const (
	MetricRevenue     Metric = "revenue"
	MetricCostOfSales Metric = "costOfSales"
	MetricExpenses    Metric = "expenses"
	MetricGrossProfit Metric = "grossProfit"
	MetricNetIncome   Metric = "netIncome"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricRevenue, MetricCostOfSales, MetricExpenses, MetricGrossProfit, MetricNetIncome:
		return true
	}
	return false
}

// LineItem is a single statement row. It is copied into every period, so
// periods never share line items.
type LineItem struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Amount   float64  `json:"amount" yaml:"amount"`
	Category Category `json:"category" yaml:"category"`
}

// BaselineStatement is the starting-period statement a scenario projects
// forward from. Gross profit and net income are always derived.
type BaselineStatement struct {
	Revenue     []LineItem `json:"revenue" yaml:"revenue"`
	CostOfSales []LineItem `json:"costOfSales" yaml:"costOfSales"`
	Expenses    []LineItem `json:"expenses" yaml:"expenses"`
}

// GrossProfit returns total revenue less total cost of sales.
func (b BaselineStatement) GrossProfit() float64 {
	return sumAmounts(b.Revenue) - sumAmounts(b.CostOfSales)
}

// NetIncome returns gross profit less total expenses.
func (b BaselineStatement) NetIncome() float64 {
	return b.GrossProfit() - sumAmounts(b.Expenses)
}

func (b BaselineStatement) items(c Category) []LineItem {
	switch c {
	case CategoryRevenue:
		return b.Revenue
	case CategoryCostOfSales:
		return b.CostOfSales
	case CategoryExpense:
		return b.Expenses
	}
	return nil
}

// GrowthAssumption binds a growth rule to the line item identified by
// (Category, TargetItemID). Assumptions that match no item are ignored.
type GrowthAssumption struct {
	ID           string     `json:"id" yaml:"id"`
	TargetItemID string     `json:"targetItemId" yaml:"targetItemId"`
	Category     Category   `json:"category" yaml:"category"`
	GrowthType   GrowthType `json:"growthType" yaml:"growthType"`
	GrowthRate   float64    `json:"growthRate" yaml:"growthRate"` // percent per period
	ManualValues []float64  `json:"manualValues,omitempty" yaml:"manualValues,omitempty"`
}

// Scenario is a baseline statement plus the assumptions used to project it.
type Scenario struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Baseline    BaselineStatement  `json:"baseline" yaml:"baseline"`
	Assumptions []GrowthAssumption `json:"assumptions" yaml:"assumptions"`
	PeriodCount int                `json:"periodCount" yaml:"periodCount"`
	PeriodType  PeriodType         `json:"periodType" yaml:"periodType"`
	StartDate   Date               `json:"startDate" yaml:"startDate"`
}

// ForecastPeriod is one projected statement.
type ForecastPeriod struct {
	Index       int        `json:"index"`
	Date        Date       `json:"date"`
	Label       string     `json:"label"`
	Revenue     []LineItem `json:"revenue"`
	CostOfSales []LineItem `json:"costOfSales"`
	Expenses    []LineItem `json:"expenses"`
	GrossProfit float64    `json:"grossProfit"`
	NetIncome   float64    `json:"netIncome"`
}

// Totals sums every period of a projection.
type Totals struct {
	Revenue     float64 `json:"revenue"`
	CostOfSales float64 `json:"costOfSales"`
	Expenses    float64 `json:"expenses"`
	GrossProfit float64 `json:"grossProfit"`
	NetIncome   float64 `json:"netIncome"`
}

// ConfidenceIntervals bounds a forecast series. The engine only carries the
// structure; bounds are computed by the caller.
type ConfidenceIntervals struct {
	Lower      decompose.Series `json:"lower"`
	Upper      decompose.Series `json:"upper"`
	Confidence float64          `json:"confidence"`
}

// ForecastResult is the output of one algorithm run. The orchestrator never
// touches a result again once it has been returned.
type ForecastResult struct {
	ScenarioID          string                    `json:"scenarioId"`
	ScenarioName        string                    `json:"scenarioName"`
	Algorithm           Algorithm                 `json:"algorithm"`
	Target              Metric                    `json:"target"`
	Periods             []ForecastPeriod          `json:"periods"`
	Totals              Totals                    `json:"totals"`
	Forecast            decompose.Series          `json:"forecast"`
	SeasonallyAdjusted  bool                      `json:"seasonallyAdjusted"`
	Components          *decompose.Components     `json:"components,omitempty"`
	Accuracy            *accuracy.Metrics         `json:"accuracy,omitempty"`
	Variance            []accuracy.VarianceRecord `json:"variance,omitempty"`
	ConfidenceIntervals *ConfidenceIntervals      `json:"confidenceIntervals,omitempty"`
}

// Labels returns the period labels in order.
func (r *ForecastResult) Labels() []string {
	labels := make([]string, len(r.Periods))
	for i, p := range r.Periods {
		labels[i] = p.Label
	}
	return labels
}
