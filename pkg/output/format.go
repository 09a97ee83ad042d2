// Package output provides utilities for formatting and displaying dashboard
// results.
package output

import (
	"fmt"
	"strings"

	"github.com/trackingsuccess/profit-planner/internal/dashboard"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
// Rows print in the order given, so callers pass rotated rows when the
// account year does not start in January.
func PrettyFormat(rows []dashboard.Row, result dashboard.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("Month     | Planned      | Actual       | Break-even   | Op. Profit   | Margin\n")
	fmt.Printf("_____     | _______      | ______       | __________   | __________   | ______\n")
	for _, row := range rows {
		margin := "—"
		if row.MarginPct != nil {
			margin = fmt.Sprintf("%.1f%%", *row.MarginPct)
		}
		_, _ = p.Printf("%-9s | $%-11.2f | $%-11.2f | $%-11.2f | $%-11.2f | %s\n",
			row.Month, row.PlannedRevenue, row.RevenueActual, row.BreakEvenRevenue, row.OperatingProfit, margin)
	}

	fmt.Printf("\n")
	ratioNote := "inferred from actuals"
	if result.CostRatioAssumed {
		ratioNote = "assumed default; no actuals with revenue yet"
	}
	s := result.Summary
	_, _ = p.Printf("Revenue goal:           $%.2f\n", s.RevenueGoal)
	_, _ = p.Printf("YTD revenue:            $%.2f\n", s.YTDRevenue)
	_, _ = p.Printf("YTD operating profit:   $%.2f\n", s.YTDProfit)
	_, _ = p.Printf("Months recorded:        %d\n", s.MonthsRecorded)
	_, _ = p.Printf("Run-rate revenue:       $%.2f\n", s.RunRateRevenue)
	_, _ = p.Printf("Run-rate profit:        $%.2f\n", s.RunRateProfit)
	_, _ = p.Printf("Cost-of-sales ratio:    %.1f%% (%s)\n", result.CostRatio*100, ratioNote)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(rows []dashboard.Row) {
	fmt.Print(CsvString(rows))
}

// CsvString renders the rows in comma-separated value format and returns
// the result, for callers that embed it in a response instead of printing.
func CsvString(rows []dashboard.Row) string {
	var b strings.Builder
	b.WriteString(`"month","plannedRevenue","revenueActual","costOfSales","otherOverheads","peopleFixed","grossMargin","operatingProfit","marginPct","breakEvenRevenue"`)
	b.WriteString("\n")
	for _, row := range rows {
		margin := ""
		if row.MarginPct != nil {
			margin = fmt.Sprintf("%.2f", *row.MarginPct)
		}
		fmt.Fprintf(&b, `"%s","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s","%.2f"`,
			row.Month, row.PlannedRevenue, row.RevenueActual, row.CostOfSales, row.OtherOverheads,
			row.PeopleFixed, row.GrossMargin, row.OperatingProfit, margin, row.BreakEvenRevenue)
		b.WriteString("\n")
	}
	return b.String()
}
