// Package costs expands annual people costs into a month-by-month fixed-cost
// series anchored to each person's start month.
package costs

import (
	"github.com/trackingsuccess/profit-planner/pkg/constants"
	"github.com/trackingsuccess/profit-planner/pkg/mathutil"
)

// Person is one paid team member's annualized fixed cost.
type Person struct {
	Name         string
	AnnualCost   float64
	StartMonth   int // 1-based calendar month the cost starts in (January=1)
	HasVan       bool
	ExtraMonthly float64
	Comment      string
}

// MonthlyFixed expands people into a 12-element series indexed by canonical
// calendar month (element 0 = January). A person contributes from StartMonth
// onwards, fully in or fully out of each month with no prorating: the annual
// cost spread evenly, plus ExtraMonthly when set, otherwise the van default
// when the person has a van. Negative inputs are clamped to zero and start
// months outside [1,12] are pulled back into range.
func MonthlyFixed(people []Person, vanDefault float64) [constants.MonthsPerYear]float64 {
	var series [constants.MonthsPerYear]float64
	vanDefault = mathutil.NonNegative(vanDefault)

	for _, p := range people {
		annual := mathutil.NonNegative(p.AnnualCost)
		extra := mathutil.NonNegative(p.ExtraMonthly)
		start := mathutil.ClampInt(p.StartMonth, 1, constants.MonthsPerYear)

		monthly := annual / constants.MonthsPerYear
		if extra > 0 {
			monthly += extra
		} else if p.HasVan {
			monthly += vanDefault
		}

		for m := start; m <= constants.MonthsPerYear; m++ {
			series[m-1] += monthly
		}
	}

	return series
}

// AnnualTotal sums a monthly fixed-cost series over the year.
func AnnualTotal(series [constants.MonthsPerYear]float64) float64 {
	var total float64
	for _, v := range series {
		total += v
	}
	return total
}
