// Package validation provides checks over output formats, plan data, and
// computed results. Checks return warnings rather than errors: the engine is
// total over its inputs and the display layer decides what to surface.
package validation

import (
	"fmt"
	"time"

	"github.com/trackingsuccess/profit-planner/internal/plan"
	"github.com/trackingsuccess/profit-planner/pkg/constants"
	"github.com/trackingsuccess/profit-planner/pkg/mathutil"
	"github.com/trackingsuccess/profit-planner/pkg/months"
	"github.com/trackingsuccess/profit-planner/pkg/rate"
)

// ValidateOutputFormat checks that the given format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("invalid output format: %s, must be %s or %s",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// PlanWarnings inspects a normalized year plan for configuration that is
// legal but probably not what the user meant.
func PlanWarnings(yp *plan.YearPlan) []string {
	var warnings []string

	if yp.AccountStartDate != "" {
		if _, err := time.Parse(months.DateLayout, yp.AccountStartDate); err != nil {
			warnings = append(warnings,
				fmt.Sprintf("account start date %q is not a valid %s date; January is assumed", yp.AccountStartDate, months.DateLayout))
		}
	}

	if !yp.LockGoal && yp.RevenueGoal > 0 {
		streams := yp.StreamGoal()
		if streams > 0 && !mathutil.WithinTolerance(streams, yp.RevenueGoal, constants.CurrencyTolerance) {
			warnings = append(warnings,
				fmt.Sprintf("revenue goal override %.0f differs from stream total %.0f", yp.RevenueGoal, streams))
		}
	}

	for _, p := range yp.PeopleCosts {
		if p.AnnualCost == 0 && p.ExtraMonthly == 0 && !p.HasVan {
			warnings = append(warnings,
				fmt.Sprintf("person %q carries no cost and does not affect the plan", p.Person))
		}
	}

	return warnings
}

// RateWarnings translates the rate solver's degeneracy flags into messages.
func RateWarnings(sol rate.Solution) []string {
	var warnings []string
	if sol.NoBillableHours {
		warnings = append(warnings,
			"no billable hours configured; the zero rate means insufficient input, not a rate of zero")
	}
	if sol.Infeasible {
		warnings = append(warnings,
			"target is infeasible: materials % plus target margin % is at or above 100%, so no finite rate reaches it")
	}
	return warnings
}
