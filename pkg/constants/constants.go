// Package constants provides shared constants for the profit-planner application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerMonth is the fixed weeks-per-month constant used to pro-rate
	// monthly figures to an arbitrary period length
	WeeksPerMonth = 4.33

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// Epsilon is the floor applied to denominators in rate and break-even
	// formulas to guard division by zero
	Epsilon = 1e-6
)

// Planning defaults
const (
	// DefaultVanMonthly is the default monthly vehicle cost applied to
	// people flagged with a van but no explicit extra cost
	DefaultVanMonthly = 1200.0

	// DefaultCostRatio is the assumed cost-of-sales ratio when no actuals
	// with revenue exist to infer one from
	DefaultCostRatio = 0.25

	// CostRatioCeiling caps the inferred cost-of-sales ratio
	CostRatioCeiling = 0.95

	// DefaultWeeksInPeriod is the rate planner's default period length
	DefaultWeeksInPeriod = WeeksPerMonth

	// MaxMaterialsPct caps the materials share of revenue
	MaxMaterialsPct = 95.0

	// MaxTargetMarginPct caps the target margin the rate planner solves for
	MaxTargetMarginPct = 70.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultDataDir is the default directory holding profile JSON files
	DefaultDataDir = "data/profiles"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
