// Package constants provides shared constants for the landscape-calculator application.
package constants

// Currency constants
const (
	// CurrencyAED is the ISO code of the currency all catalog costs are quoted in.
	CurrencyAED = "AED"

	// CurrencyUSD is the ISO code of the alternate display currency.
	CurrencyUSD = "USD"

	// AEDToUSDRate is the fixed AED to USD exchange rate. There is no live rate.
	AEDToUSDRate = 0.27

	// DisplayFractionDigits is the number of fraction digits shown for amounts.
	DisplayFractionDigits = 0
)

// Financial constants
const (
	// RelativeTolerance is the relative tolerance used for floating-point invariants.
	RelativeTolerance = 1e-9

	// PopularPlanIndex is the display position of the recommended plan.
	PopularPlanIndex = 1
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "LANDSCAPE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRateLimitCapacity is the default number of requests per client per window.
	DefaultRateLimitCapacity = 30

	// DefaultRateLimitWindow is the default refill window for the rate limiter.
	DefaultRateLimitWindow = "1m"
)

// Persistence constants
const (
	// DefaultStoreBackend is the default backend for last-used inputs.
	DefaultStoreBackend = "file"

	// DefaultStoreFile is the default file used by the file store.
	DefaultStoreFile = ".landscape_calculator_inputs.json"

	// DefaultStoreKey is the key the last-used inputs are stored under.
	DefaultStoreKey = "landscape_calculator_inputs"

	// DefaultRedisAddress is the default Redis address for the redis store.
	DefaultRedisAddress = "localhost:6379"
)

// Share link constants
const (
	// QueryParamSize carries the area size as a decimal string.
	QueryParamSize = "size"

	// QueryParamBudget carries the budget tier identifier.
	QueryParamBudget = "budget"

	// QueryValueSelected marks a selected feature.
	QueryValueSelected = "1"
)
