// Package plan defines the persisted planning data model and the boundary
// normalization that keeps it structurally consistent. All coercion of
// malformed input happens here, once, rather than inside the computations.
package plan

import (
	"time"

	"github.com/trackingsuccess/profit-planner/pkg/constants"
	"github.com/trackingsuccess/profit-planner/pkg/mathutil"
	"github.com/trackingsuccess/profit-planner/pkg/months"
)

// PersonCost is one paid team member's annualized fixed cost. The JSON keys
// match the profile files written by earlier versions of the product.
type PersonCost struct {
	Person       string  `json:"Person"`
	AnnualCost   float64 `json:"AnnualCost"`
	StartMonth   int     `json:"StartMonth"`
	HasVan       bool    `json:"HasVan"`
	Comment      string  `json:"Comment"`
	ExtraMonthly float64 `json:"ExtraMonthly"`
}

// RevenueStream is one named revenue target for the year.
type RevenueStream struct {
	Stream      string  `json:"Stream"`
	TargetValue float64 `json:"TargetValue"`
	Notes       string  `json:"Notes"`
}

// MonthlyPlanEntry is the planned revenue for one calendar month.
type MonthlyPlanEntry struct {
	Month          string  `json:"Month"`
	PlannedRevenue float64 `json:"PlannedRevenue"`
}

// MonthlyActualEntry records actuals for one calendar month.
type MonthlyActualEntry struct {
	Month          string  `json:"Month"`
	RevenueActual  float64 `json:"RevenueActual"`
	CostOfSales    float64 `json:"CostOfSales"`
	OtherOverheads float64 `json:"OtherOverheads"`
}

// YearPlan aggregates all planning data for one business for one year.
// A plan always carries exactly 12 monthly plan entries and 12 monthly
// actual entries, one per calendar month; Normalize repairs any drift.
type YearPlan struct {
	RevenueGoal       float64              `json:"revenue_goal"`
	LockGoal          bool                 `json:"lock_goal"`
	RevenueStreams    []RevenueStream      `json:"revenue_streams"`
	PeopleCosts       []PersonCost         `json:"people_costs"`
	VanMonthlyDefault float64              `json:"van_monthly_default"`
	MonthlyPlan       []MonthlyPlanEntry   `json:"monthly_plan"`
	MonthlyActuals    []MonthlyActualEntry `json:"monthly_actuals"`
	AccountStartDate  string               `json:"account_start_date"`
	Tasks             []Task               `json:"tasks,omitempty"`
}

// DefaultStreams seeds the four standard revenue streams for a new year.
func DefaultStreams() []RevenueStream {
	return []RevenueStream{
		{Stream: "New Clients", TargetValue: 400000},
		{Stream: "Subscriptions / Recurring", TargetValue: 300000},
		{Stream: "Upsell (New Program)", TargetValue: 250000},
		{Stream: "Other / Experiments", TargetValue: 50000},
	}
}

// DefaultMonthlyPlan spreads the revenue goal evenly across 12 months,
// ordered from the account start month.
func DefaultMonthlyPlan(goal float64, startISO string) []MonthlyPlanEntry {
	per := mathutil.NonNegative(goal) / constants.MonthsPerYear
	seq := months.Rotate(months.StartMonth(startISO))
	entries := make([]MonthlyPlanEntry, 0, constants.MonthsPerYear)
	for _, m := range seq {
		entries = append(entries, MonthlyPlanEntry{Month: m, PlannedRevenue: per})
	}
	return entries
}

// DefaultMonthlyActuals creates a zeroed actuals set ordered from the
// account start month.
func DefaultMonthlyActuals(startISO string) []MonthlyActualEntry {
	seq := months.Rotate(months.StartMonth(startISO))
	entries := make([]MonthlyActualEntry, 0, constants.MonthsPerYear)
	for _, m := range seq {
		entries = append(entries, MonthlyActualEntry{Month: m})
	}
	return entries
}

// NewYearPlan creates a year plan with product defaults anchored to the
// given account start date.
func NewYearPlan(startISO string) *YearPlan {
	return &YearPlan{
		LockGoal:          true,
		RevenueStreams:    DefaultStreams(),
		PeopleCosts:       []PersonCost{},
		VanMonthlyDefault: constants.DefaultVanMonthly,
		MonthlyPlan:       DefaultMonthlyPlan(0, startISO),
		MonthlyActuals:    DefaultMonthlyActuals(startISO),
		AccountStartDate:  startISO,
	}
}

// StreamGoal sums the revenue stream targets.
func (yp *YearPlan) StreamGoal() float64 {
	var total float64
	for _, s := range yp.RevenueStreams {
		total += mathutil.NonNegative(s.TargetValue)
	}
	return total
}

// SyncGoal applies the stream total as the year's revenue goal while the
// goal is locked to the streams. An unlocked goal is an explicit override
// and is left alone.
func (yp *YearPlan) SyncGoal() {
	if yp.LockGoal {
		yp.RevenueGoal = yp.StreamGoal()
	}
}

// StartMonthIndex resolves the account start date to its calendar month,
// defaulting to January when the date is missing or malformed.
func (yp *YearPlan) StartMonthIndex() int {
	return months.StartMonth(yp.AccountStartDate)
}

// Normalize clamps negative monetary inputs to zero, pulls start months back
// into range, and repairs monthly arrays that do not hold exactly one entry
// per calendar month by regenerating the full default set for that array
// only. Partial monthly data is discarded rather than merged.
func (yp *YearPlan) Normalize() {
	yp.RevenueGoal = mathutil.NonNegative(yp.RevenueGoal)
	yp.VanMonthlyDefault = mathutil.NonNegative(yp.VanMonthlyDefault)

	for i := range yp.RevenueStreams {
		yp.RevenueStreams[i].TargetValue = mathutil.NonNegative(yp.RevenueStreams[i].TargetValue)
	}

	for i := range yp.PeopleCosts {
		p := &yp.PeopleCosts[i]
		p.AnnualCost = mathutil.NonNegative(p.AnnualCost)
		p.ExtraMonthly = mathutil.NonNegative(p.ExtraMonthly)
		p.StartMonth = mathutil.ClampInt(p.StartMonth, 1, constants.MonthsPerYear)
	}

	if !planEntriesComplete(yp.MonthlyPlan) {
		yp.MonthlyPlan = DefaultMonthlyPlan(yp.RevenueGoal, yp.AccountStartDate)
	} else {
		for i := range yp.MonthlyPlan {
			yp.MonthlyPlan[i].PlannedRevenue = mathutil.NonNegative(yp.MonthlyPlan[i].PlannedRevenue)
		}
	}

	if !actualEntriesComplete(yp.MonthlyActuals) {
		yp.MonthlyActuals = DefaultMonthlyActuals(yp.AccountStartDate)
	} else {
		for i := range yp.MonthlyActuals {
			a := &yp.MonthlyActuals[i]
			a.RevenueActual = mathutil.NonNegative(a.RevenueActual)
			a.CostOfSales = mathutil.NonNegative(a.CostOfSales)
			a.OtherOverheads = mathutil.NonNegative(a.OtherOverheads)
		}
	}
}

func planEntriesComplete(entries []MonthlyPlanEntry) bool {
	if len(entries) != constants.MonthsPerYear {
		return false
	}
	seen := make(map[string]struct{}, constants.MonthsPerYear)
	for _, e := range entries {
		if _, ok := months.Index(e.Month); !ok {
			return false
		}
		if _, dup := seen[e.Month]; dup {
			return false
		}
		seen[e.Month] = struct{}{}
	}
	return true
}

func actualEntriesComplete(entries []MonthlyActualEntry) bool {
	if len(entries) != constants.MonthsPerYear {
		return false
	}
	seen := make(map[string]struct{}, constants.MonthsPerYear)
	for _, e := range entries {
		if _, ok := months.Index(e.Month); !ok {
			return false
		}
		if _, dup := seen[e.Month]; dup {
			return false
		}
		seen[e.Month] = struct{}{}
	}
	return true
}

// Business identifies the profile owner.
type Business struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
}

// Profile is the persisted record for one business across years.
type Profile struct {
	Business Business             `json:"business"`
	Years    map[string]*YearPlan `json:"years"`
}

// NewProfile creates an empty profile for a business.
func NewProfile(name, startISO string) *Profile {
	if startISO == "" {
		startISO = time.Now().Format(months.DateLayout)
	}
	return &Profile{
		Business: Business{Name: name, StartDate: startISO},
		Years:    make(map[string]*YearPlan),
	}
}

// EnsureYear returns the plan for a year, creating it with defaults on first
// reference. Years are never implicitly deleted.
func (p *Profile) EnsureYear(key string) *YearPlan {
	if p.Years == nil {
		p.Years = make(map[string]*YearPlan)
	}
	if yp, ok := p.Years[key]; ok {
		return yp
	}
	start := p.Business.StartDate
	if start == "" {
		start = time.Now().Format(months.DateLayout)
	}
	yp := NewYearPlan(start)
	p.Years[key] = yp
	return yp
}

// Normalize repairs every year plan in the profile.
func (p *Profile) Normalize() {
	for _, yp := range p.Years {
		if yp != nil {
			yp.Normalize()
		}
	}
}
