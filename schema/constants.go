package schema

// Custom string types for type safety.
type (
	// TimePeriod represents a history window for analysis.
	TimePeriod string

	// WeightStrategy represents how project usage is weighted for allocation.
	WeightStrategy string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the classify store.
	DatabaseBackend string

	// Classification represents the judgment recorded for an unknown executable.
	Classification string
)

// All time periods supported.
const (
	DayPeriod   TimePeriod = "day"
	WeekPeriod  TimePeriod = "week"
	MonthPeriod TimePeriod = "month" // default
	YearPeriod  TimePeriod = "year"
	AllPeriod   TimePeriod = "all"
)

// All weight strategies supported.
const (
	CountStrategy    WeightStrategy = "count" // default
	DurationStrategy WeightStrategy = "duration"
	SuccessStrategy  WeightStrategy = "success"
	CombinedStrategy WeightStrategy = "combined"
)

// All output modes supported.
const (
	TableOut    OutputMode = "table" // default
	CSVOut      OutputMode = "csv"
	JSONOut     OutputMode = "json"
	MarkdownOut OutputMode = "markdown"
)

// All classify store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All classifications supported.
const (
	SystemClass     Classification = "system"
	ThirdPartyClass Classification = "third_party"
	UserClass       Classification = "user"
	IgnoredClass    Classification = "ignored"
	NotFoundClass   Classification = "not_found"
	UnknownClass    Classification = "unknown"
)

// Exclusion reasons attached to projects that receive no recommendation.
// These are stable tags consumed by reporting; do not rephrase them.
const (
	ReasonBelowMinimum  = "below minimum threshold"
	ReasonBeyondMaximum = "beyond max count"
	ReasonZeroWeight    = "zero weight"
)

// ValidTimePeriods lists all valid time periods.
var ValidTimePeriods = map[TimePeriod]struct{}{
	DayPeriod:   {},
	WeekPeriod:  {},
	MonthPeriod: {},
	YearPeriod:  {},
	AllPeriod:   {},
}

// ValidWeightStrategies lists all valid weight strategies.
var ValidWeightStrategies = map[WeightStrategy]struct{}{
	CountStrategy:    {},
	DurationStrategy: {},
	SuccessStrategy:  {},
	CombinedStrategy: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TableOut:    {},
	CSVOut:      {},
	JSONOut:     {},
	MarkdownOut: {},
}

// ValidDatabaseBackends lists all valid classify store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidClassifications lists the judgments a user may assign.
var ValidClassifications = map[Classification]struct{}{
	SystemClass:     {},
	ThirdPartyClass: {},
	UserClass:       {},
	IgnoredClass:    {},
}
