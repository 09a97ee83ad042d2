// Package rate solves the blended hourly rate a trade team must charge to
// hit a profit or margin target, and allocates the resulting revenue, cost,
// and profit back to individual team members.
package rate

import (
	"github.com/trackingsuccess/profit-planner/pkg/constants"
	"github.com/trackingsuccess/profit-planner/pkg/mathutil"
)

// HoursSource selects where billable hours come from.
type HoursSource string

const (
	// HoursCapacity derives billable hours from paid hours and utilisation.
	HoursCapacity HoursSource = "capacity"

	// HoursDemand derives billable hours from quote volume, conversion, and
	// average job size.
	HoursDemand HoursSource = "demand"
)

// TargetMode selects the profitability target being solved for.
type TargetMode string

const (
	// TargetProfitAmount solves for an absolute profit figure.
	TargetProfitAmount TargetMode = "profit"

	// TargetMarginPercent solves for a profit margin percentage.
	TargetMarginPercent TargetMode = "margin"
)

// Member describes one member of the trade team.
type Member struct {
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	HourlyWageCost   float64 `json:"hourlyWageCost"`
	VanMonthly       float64 `json:"vanMonthly"`
	PaidHoursPerWeek float64 `json:"paidHoursPerWeek"`
	UtilisationPct   float64 `json:"utilisationPct"`
	QuotesPerWeek    float64 `json:"quotesPerWeek"`
	QuoteToJobPct    float64 `json:"quoteToJobPct"`
	AvgJobHours      float64 `json:"avgJobHours"`
}

// Input carries the roster and scalar configuration for one solve.
type Input struct {
	Weeks                  float64     `json:"weeks"`
	MaterialsPct           float64     `json:"materialsPct"`
	CurrentRate            float64     `json:"currentRate"`
	MarketingPerMonth      float64     `json:"marketingPerMonth"`
	OtherOverheadsPerMonth float64     `json:"otherOverheadsPerMonth"`
	HoursSource            HoursSource `json:"hoursSource"`
	TargetMode             TargetMode  `json:"targetMode"`
	TargetProfit           float64     `json:"targetProfit"`
	TargetMarginPct        float64     `json:"targetMarginPct"`
	Team                   []Member    `json:"team"`
}

// MemberShare is the proportional what-if allocation for one member at the
// required rate. The allocation never feeds back into the rate itself, which
// is solved once at the aggregate level.
type MemberShare struct {
	Name          string  `json:"name"`
	BillableHours float64 `json:"billableHours"`
	Revenue       float64 `json:"revenue"`
	COGS          float64 `json:"cogs"`
	WageCost      float64 `json:"wageCost"`
	VanCost       float64 `json:"vanCost"`
	OverheadShare float64 `json:"overheadShare"`
	Profit        float64 `json:"profit"`
}

// Solution is the solved rate plus the comparison at the current rate.
// Infeasible reports that the epsilon floor was engaged on the denominator
// (materials % plus target margin % at or above 100%), so the returned rate
// signals an impossible target rather than a usable answer. NoBillableHours
// reports that the roster produced zero hours, in which case the zero rate
// means "insufficient input", not "charge nothing".
type Solution struct {
	BillableHours      float64       `json:"billableHours"`
	RequiredRate       float64       `json:"requiredRate"`
	RevenueAtCurrent   float64       `json:"revenueAtCurrent"`
	ProfitAtCurrent    float64       `json:"profitAtCurrent"`
	MarginPctAtCurrent float64       `json:"marginPctAtCurrent"`
	Infeasible         bool          `json:"infeasible"`
	NoBillableHours    bool          `json:"noBillableHours"`
	Shares             []MemberShare `json:"shares"`
}

type memberDerived struct {
	billable float64
	wageCost float64
	vanCost  float64
}

func (m Member) normalized() Member {
	m.HourlyWageCost = mathutil.NonNegative(m.HourlyWageCost)
	m.VanMonthly = mathutil.NonNegative(m.VanMonthly)
	m.PaidHoursPerWeek = mathutil.NonNegative(m.PaidHoursPerWeek)
	m.UtilisationPct = mathutil.Clamp(m.UtilisationPct, 0, 100)
	m.QuotesPerWeek = mathutil.NonNegative(m.QuotesPerWeek)
	m.QuoteToJobPct = mathutil.Clamp(m.QuoteToJobPct, 0, 100)
	m.AvgJobHours = mathutil.NonNegative(m.AvgJobHours)
	return m
}

func (in Input) normalized() Input {
	if in.Weeks <= 0 {
		in.Weeks = constants.DefaultWeeksInPeriod
	}
	in.MaterialsPct = mathutil.Clamp(in.MaterialsPct, 0, constants.MaxMaterialsPct)
	in.TargetMarginPct = mathutil.Clamp(in.TargetMarginPct, 0, constants.MaxTargetMarginPct)
	in.CurrentRate = mathutil.NonNegative(in.CurrentRate)
	in.MarketingPerMonth = mathutil.NonNegative(in.MarketingPerMonth)
	in.OtherOverheadsPerMonth = mathutil.NonNegative(in.OtherOverheadsPerMonth)
	in.TargetProfit = mathutil.NonNegative(in.TargetProfit)
	if in.HoursSource != HoursDemand {
		in.HoursSource = HoursCapacity
	}
	if in.TargetMode != TargetMarginPercent {
		in.TargetMode = TargetProfitAmount
	}
	team := make([]Member, len(in.Team))
	for i, m := range in.Team {
		team[i] = m.normalized()
	}
	in.Team = team
	return in
}

func derive(m Member, weeks float64, src HoursSource) memberDerived {
	paid := m.PaidHoursPerWeek * weeks

	var billable float64
	if src == HoursDemand {
		jobs := m.QuotesPerWeek * weeks * m.QuoteToJobPct / constants.PercentageMultiplier
		billable = jobs * m.AvgJobHours
	} else {
		billable = paid * m.UtilisationPct / constants.PercentageMultiplier
	}

	return memberDerived{
		billable: billable,
		wageCost: m.HourlyWageCost * paid,
		vanCost:  m.VanMonthly * (weeks / constants.WeeksPerMonth),
	}
}

// Solve inverts the profitability equation for the required blended rate.
// It is total over its input domain: malformed values are coerced at the
// boundary and degenerate scenarios are flagged on the Solution rather than
// returned as errors.
func Solve(raw Input) Solution {
	in := raw.normalized()

	derived := make([]memberDerived, len(in.Team))
	var hours, peopleCosts float64
	for i, m := range in.Team {
		d := derive(m, in.Weeks, in.HoursSource)
		derived[i] = d
		hours += d.billable
		peopleCosts += d.wageCost + d.vanCost
	}

	periodScale := in.Weeks / constants.WeeksPerMonth
	marketing := in.MarketingPerMonth * periodScale
	other := in.OtherOverheadsPerMonth * periodScale
	materials := in.MaterialsPct / constants.PercentageMultiplier

	sol := Solution{BillableHours: hours}

	if hours > 0 {
		switch in.TargetMode {
		case TargetMarginPercent:
			margin := in.TargetMarginPct / constants.PercentageMultiplier
			sol.RequiredRate, sol.Infeasible = mathutil.SafeDivide(
				peopleCosts+marketing+other, hours*(1-materials-margin))
		default:
			sol.RequiredRate, sol.Infeasible = mathutil.SafeDivide(
				in.TargetProfit+peopleCosts+marketing+other, hours*(1-materials))
		}
	} else {
		sol.NoBillableHours = true
	}

	sol.RevenueAtCurrent = in.CurrentRate * hours
	sol.ProfitAtCurrent = sol.RevenueAtCurrent - materials*sol.RevenueAtCurrent - peopleCosts - marketing - other
	if sol.RevenueAtCurrent > 0 {
		sol.MarginPctAtCurrent = sol.ProfitAtCurrent / sol.RevenueAtCurrent * constants.PercentageMultiplier
	}

	sol.Shares = allocate(in.Team, derived, sol.RequiredRate, materials, marketing+other)
	return sol
}

// allocate splits revenue, COGS, and overheads across members in proportion
// to their billable hours at the required rate.
func allocate(team []Member, derived []memberDerived, requiredRate, materials, overheads float64) []MemberShare {
	shares := make([]MemberShare, len(team))
	var totalRevenue float64
	for i, d := range derived {
		revenue := requiredRate * d.billable
		shares[i] = MemberShare{
			Name:          team[i].Name,
			BillableHours: d.billable,
			Revenue:       revenue,
			WageCost:      d.wageCost,
			VanCost:       d.vanCost,
		}
		totalRevenue += revenue
	}

	for i := range shares {
		if totalRevenue > 0 {
			shares[i].COGS = materials * shares[i].Revenue
			shares[i].OverheadShare = overheads * shares[i].Revenue / totalRevenue
		}
		shares[i].Profit = shares[i].Revenue - shares[i].COGS - shares[i].WageCost - shares[i].VanCost - shares[i].OverheadShare
	}

	return shares
}
