// Package dashboard merges the monthly revenue plan with actuals and the
// amortized people costs, and derives the profitability metrics for each
// month. Rows are computed fresh on every call and never stored, so the
// dashboard stays consistent after any edit to the underlying plan.
package dashboard

import (
	"github.com/trackingsuccess/profit-planner/internal/plan"
	"github.com/trackingsuccess/profit-planner/pkg/constants"
	"github.com/trackingsuccess/profit-planner/pkg/costs"
	"github.com/trackingsuccess/profit-planner/pkg/months"
)

// Row is the derived per-month record. MarginPct is nil when the month has
// no revenue: margin is undefined there, not zero.
type Row struct {
	Month            string   `json:"month"`
	PlannedRevenue   float64  `json:"plannedRevenue"`
	RevenueActual    float64  `json:"revenueActual"`
	CostOfSales      float64  `json:"costOfSales"`
	OtherOverheads   float64  `json:"otherOverheads"`
	PeopleFixed      float64  `json:"peopleFixed"`
	GrossMargin      float64  `json:"grossMargin"`
	OperatingProfit  float64  `json:"operatingProfit"`
	MarginPct        *float64 `json:"marginPct,omitempty"`
	BreakEvenRevenue float64  `json:"breakEvenRevenue"`
}

// Result bundles the dashboard rows with the year-level derived metrics.
type Result struct {
	Rows             []Row   `json:"rows"`
	CostRatio        float64 `json:"costRatio"`
	CostRatioAssumed bool    `json:"costRatioAssumed"`
	Summary          Summary `json:"summary"`
}

// Reconcile merges the plan, the actuals, and the fixed-cost series into one
// row per month in canonical calendar order. Plan and actual entries may
// arrive in any order (profiles store them rotated to the account start
// month); months absent from either array contribute zeros.
func Reconcile(planEntries []plan.MonthlyPlanEntry, actuals []plan.MonthlyActualEntry, peopleFixed [constants.MonthsPerYear]float64) []Row {
	planned := make(map[string]float64, len(planEntries))
	for _, e := range planEntries {
		planned[e.Month] = e.PlannedRevenue
	}
	actual := make(map[string]plan.MonthlyActualEntry, len(actuals))
	for _, e := range actuals {
		actual[e.Month] = e
	}

	rows := make([]Row, 0, constants.MonthsPerYear)
	for i, name := range months.Names {
		a := actual[name]
		row := Row{
			Month:          name,
			PlannedRevenue: planned[name],
			RevenueActual:  a.RevenueActual,
			CostOfSales:    a.CostOfSales,
			OtherOverheads: a.OtherOverheads,
			PeopleFixed:    peopleFixed[i],
		}
		row.GrossMargin = row.RevenueActual - row.CostOfSales
		row.OperatingProfit = row.GrossMargin - row.PeopleFixed - row.OtherOverheads
		if row.RevenueActual > 0 {
			pct := row.GrossMargin / row.RevenueActual * constants.PercentageMultiplier
			row.MarginPct = &pct
		}
		rows = append(rows, row)
	}
	return rows
}

// Build runs the full pipeline for one year plan: amortize people costs,
// reconcile plan against actuals, infer the cost ratio, fill in break-even
// revenue, and summarize. defaultRatio is the assumed cost ratio used when
// no actuals with revenue exist.
func Build(yp *plan.YearPlan, defaultRatio float64) Result {
	peopleFixed := costs.MonthlyFixed(peopleToCosts(yp.PeopleCosts), yp.VanMonthlyDefault)
	rows := Reconcile(yp.MonthlyPlan, yp.MonthlyActuals, peopleFixed)

	ratio, assumed := InferCostRatio(rows, defaultRatio)
	ApplyBreakEven(rows, ratio)

	return Result{
		Rows:             rows,
		CostRatio:        ratio,
		CostRatioAssumed: assumed,
		Summary:          Summarize(rows, yp.RevenueGoal),
	}
}

// RotateRows reorders rows for display so the sequence begins at the given
// calendar month. Storage and computation stay in canonical order.
func RotateRows(rows []Row, startMonth int) []Row {
	byMonth := make(map[string]Row, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}
	out := make([]Row, 0, constants.MonthsPerYear)
	for _, name := range months.Rotate(startMonth) {
		if r, ok := byMonth[name]; ok {
			out = append(out, r)
		}
	}
	return out
}

func peopleToCosts(people []plan.PersonCost) []costs.Person {
	out := make([]costs.Person, 0, len(people))
	for _, p := range people {
		out = append(out, costs.Person{
			Name:         p.Person,
			AnnualCost:   p.AnnualCost,
			StartMonth:   p.StartMonth,
			HasVan:       p.HasVan,
			ExtraMonthly: p.ExtraMonthly,
			Comment:      p.Comment,
		})
	}
	return out
}
