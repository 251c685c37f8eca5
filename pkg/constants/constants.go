// Package constants provides shared constants for the loan-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// BalanceDriftRatio bounds the float drift, relative to the principal,
	// that is dropped from a schedule's final balance
	BalanceDriftRatio = 1e-9
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX writes the schedule to a spreadsheet file
	OutputFormatXLSX = "xlsx"

	// OutputFormatPNG writes the result card to an image file
	OutputFormatPNG = "png"

	// OutputFormatPDF writes the result card to a PDF file
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. LOANCALC_LOGGING_LEVEL
	EnvPrefix = "LOANCALC"
)

// Server and share-link defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultSharePath is the page path that carries the query contract
	DefaultSharePath = "/cong-cu-tinh-lai-suat-vay-ngan-hang"

	// DefaultMaxTermMonths bounds the schedule length the server will compute
	DefaultMaxTermMonths = 600

	// DefaultAnalyticsKeyPrefix prefixes Redis keys written by the analytics tracker
	DefaultAnalyticsKeyPrefix = "loancalc:events"
)

// Query-string keys
const (
	QueryAmount  = "amount"
	QueryRate    = "rate"
	QueryTerm    = "term"
	QueryType    = "type"
	QueryBank    = "bank"
	QueryBanker  = "banker"
	QueryContact = "contact"
)
