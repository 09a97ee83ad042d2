package dashboard

import "github.com/trackingsuccess/profit-planner/pkg/constants"

// Summary aggregates year-to-date and run-rate figures across the rows.
type Summary struct {
	RevenueGoal    float64 `json:"revenueGoal"`
	YTDRevenue     float64 `json:"ytdRevenue"`
	YTDProfit      float64 `json:"ytdProfit"`
	MonthsRecorded int     `json:"monthsRecorded"`
	RunRateRevenue float64 `json:"runRateRevenue"`
	RunRateProfit  float64 `json:"runRateProfit"`
}

// Summarize totals the rows and annualizes them as a simple run-rate:
// (sum over recorded months) / (count of recorded months) * 12. A month
// counts as recorded when any of its actual figures is nonzero.
func Summarize(rows []Row, revenueGoal float64) Summary {
	s := Summary{RevenueGoal: revenueGoal}
	for _, r := range rows {
		s.YTDRevenue += r.RevenueActual
		s.YTDProfit += r.OperatingProfit
		if r.RevenueActual > 0 || r.CostOfSales > 0 || r.OtherOverheads > 0 {
			s.MonthsRecorded++
		}
	}
	if s.MonthsRecorded > 0 {
		s.RunRateRevenue = s.YTDRevenue / float64(s.MonthsRecorded) * constants.MonthsPerYear
		s.RunRateProfit = s.YTDProfit / float64(s.MonthsRecorded) * constants.MonthsPerYear
	}
	return s
}
