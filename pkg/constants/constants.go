// Package constants provides shared constants for the mortgage-estimator application.
package constants

// DateLayout is the format accepted for as-of dates and used for all date
// output.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// FixedTermYears is the term applied to every Fixed Rate loan
	FixedTermYears = 30

	// CurrencyPlaces is the number of decimal places kept for currency values
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Schedule constants
const (
	// DueDateOffsetDays is the fixed distance between the as-of date and the
	// projected next due date.
	DueDateOffsetDays = 30

	// DaysPerWeek is the row width of the simplified calendar grid
	DaysPerWeek = 7
)

// Placeholder payment composition used for the breakdown chart.
const (
	PlaceholderPrincipalShare = 0.60
	PlaceholderInterestShare  = 0.30
	PlaceholderTaxShare       = 0.10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// DefaultCurrencySymbol is prefixed to formatted amounts
	DefaultCurrencySymbol = "$"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides, e.g. MORTGAGE_LOAN_HOMEPRICE
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
