package dashboard

import (
	"github.com/trackingsuccess/profit-planner/pkg/constants"
	"github.com/trackingsuccess/profit-planner/pkg/mathutil"
)

// InferCostRatio estimates the effective cost-of-sales ratio from the rows
// that carry revenue: the mean of CostOfSales/RevenueActual, clamped to
// [0, 0.95]. When no row has revenue the fallback ratio is returned and the
// second result reports that the structure was assumed rather than observed.
// The estimate is trailing and recomputed from scratch each call; nothing is
// smoothed or persisted.
func InferCostRatio(rows []Row, fallback float64) (float64, bool) {
	var sum float64
	var n int
	for _, r := range rows {
		if r.RevenueActual > 0 {
			sum += r.CostOfSales / r.RevenueActual
			n++
		}
	}
	if n == 0 {
		return mathutil.Clamp(fallback, 0, constants.CostRatioCeiling), true
	}
	return mathutil.Clamp(sum/float64(n), 0, constants.CostRatioCeiling), false
}

// BreakEven returns the revenue needed to cover the given fixed costs at the
// given cost-of-sales ratio: fixed / max(epsilon, 1-ratio).
func BreakEven(fixedCosts, costRatio float64) float64 {
	revenue, _ := mathutil.SafeDivide(fixedCosts, 1-costRatio)
	return revenue
}

// ApplyBreakEven fills BreakEvenRevenue on every row, treating the month's
// people costs plus other overheads as its fixed-cost base.
func ApplyBreakEven(rows []Row, costRatio float64) {
	for i := range rows {
		rows[i].BreakEvenRevenue = BreakEven(rows[i].PeopleFixed+rows[i].OtherOverheads, costRatio)
	}
}
