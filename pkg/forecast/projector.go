package forecast

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Projection is the ordered period sequence of a scenario and its totals.
type Projection struct {
	Periods []ForecastPeriod `json:"periods"`
	Totals  Totals           `json:"totals"`
}

// Project expands a scenario into one statement per period. Every period
// starts from a fresh copy of the baseline items; matching assumptions are
// applied in list order.
func Project(s Scenario) (*Projection, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	periods := make([]ForecastPeriod, 0, s.PeriodCount)
	totals := struct {
		revenue, costOfSales, expenses, gross, net decimal.Decimal
	}{}

	for i := 0; i < s.PeriodCount; i++ {
		statement := BaselineStatement{
			Revenue:     cloneItems(s.Baseline.Revenue, CategoryRevenue),
			CostOfSales: cloneItems(s.Baseline.CostOfSales, CategoryCostOfSales),
			Expenses:    cloneItems(s.Baseline.Expenses, CategoryExpense),
		}

		for _, a := range s.Assumptions {
			item := findItem(statement.items(a.Category), a.TargetItemID)
			if item == nil {
				continue
			}
			item.Amount = ApplyGrowth(item.Amount, a, i)
		}

		date := periodDate(s.StartDate.Time, s.PeriodType, i)
		period := ForecastPeriod{
			Index:       i,
			Date:        Date{date},
			Label:       periodLabel(date, s.PeriodType),
			Revenue:     statement.Revenue,
			CostOfSales: statement.CostOfSales,
			Expenses:    statement.Expenses,
			GrossProfit: statement.GrossProfit(),
			NetIncome:   statement.NetIncome(),
		}
		periods = append(periods, period)

		totals.revenue = totals.revenue.Add(sumDecimal(period.Revenue))
		totals.costOfSales = totals.costOfSales.Add(sumDecimal(period.CostOfSales))
		totals.expenses = totals.expenses.Add(sumDecimal(period.Expenses))
		totals.gross = totals.gross.Add(decimalFromFloat(period.GrossProfit))
		totals.net = totals.net.Add(decimalFromFloat(period.NetIncome))
	}

	return &Projection{
		Periods: periods,
		Totals: Totals{
			Revenue:     totals.revenue.InexactFloat64(),
			CostOfSales: totals.costOfSales.InexactFloat64(),
			Expenses:    totals.expenses.InexactFloat64(),
			GrossProfit: totals.gross.InexactFloat64(),
			NetIncome:   totals.net.InexactFloat64(),
		},
	}, nil
}

// Series extracts one figure per period.
func (p *Projection) Series(m Metric) []float64 {
	out := make([]float64, len(p.Periods))
	for i, period := range p.Periods {
		switch m {
		case MetricRevenue:
			out[i] = sumAmounts(period.Revenue)
		case MetricCostOfSales:
			out[i] = sumAmounts(period.CostOfSales)
		case MetricExpenses:
			out[i] = sumAmounts(period.Expenses)
		case MetricGrossProfit:
			out[i] = period.GrossProfit
		case MetricNetIncome:
			out[i] = period.NetIncome
		}
	}
	return out
}

// Labels returns the period labels in order.
func (p *Projection) Labels() []string {
	labels := make([]string, len(p.Periods))
	for i, period := range p.Periods {
		labels[i] = period.Label
	}
	return labels
}

func cloneItems(items []LineItem, c Category) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Category = c
	}
	return out
}

func findItem(items []LineItem, id string) *LineItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// periodDate advances start by index period units. Month arithmetic clamps
// to the last day of the target month.
func periodDate(start time.Time, pt PeriodType, index int) time.Time {
	switch pt {
	case PeriodMonthly:
		return addMonths(start, index)
	case PeriodQuarterly:
		return addMonths(start, 3*index)
	case PeriodYearly:
		return addMonths(start, 12*index)
	}
	return start
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func periodLabel(t time.Time, pt PeriodType) string {
	switch pt {
	case PeriodMonthly:
		return t.Format("Jan 2006")
	case PeriodQuarterly:
		return fmt.Sprintf("Q%d %d", (int(t.Month())-1)/3+1, t.Year())
	case PeriodYearly:
		return strconv.Itoa(t.Year())
	}
	return t.Format(dateLayout)
}

func sumAmounts(items []LineItem) float64 {
	return sumDecimal(items).InexactFloat64()
}

func sumDecimal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimalFromFloat(it.Amount))
	}
	return total
}

// decimalFromFloat treats non-finite values as zero; decimal cannot hold them.
func decimalFromFloat(v float64) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
