package schema

// Custom string types for type safety.
type (
	// TravelMode represents the travel mode of a count record.
	TravelMode string

	// Method represents how a site-year estimate was produced.
	Method string

	// DayType represents the weekday/saturday/sunday bucket for hourly factors.
	DayType string

	// ProfileKind represents one of the two factor table documents.
	ProfileKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All travel modes supported.
const (
	BikeMode TravelMode = "bike"
	PedMode  TravelMode = "ped"
	AllModes TravelMode = "all" // no filtering
)

// All estimation methods supported.
const (
	ExpansionMethod Method = "expansion" // default, factor-based
	FallbackMethod  Method = "fallback"  // profile-free scaling
)

// All day types used for hourly factor lookup.
const (
	WeekdayType  DayType = "weekday"
	SaturdayType DayType = "saturday"
	SundayType   DayType = "sunday"
)

// The two factor table documents.
const (
	HourlyProfileKind        ProfileKind = "hourly"
	NormalizationProfileKind ProfileKind = "normalization"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Engine constants.
const (
	// DefaultProfileName is the profile looked up in both factor documents
	// when no name is configured.
	DefaultProfileName = "nbpd"

	// DefaultFallbackScale converts a mean hourly count into a daily
	// estimate when no factor data is available.
	DefaultFallbackScale = 24.0

	// HoursPerDay is the observation count of a statistically complete day.
	HoursPerDay = 24

	// CoreDaytimeStart and CoreDaytimeEnd bound the hours (inclusive) where
	// a missing hourly factor is worth warning about. Counters are commonly
	// idle outside this band, so absence there is expected and silent.
	CoreDaytimeStart = 6
	CoreDaytimeEnd   = 21
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidTravelModes lists all valid travel mode filters.
var ValidTravelModes = map[TravelMode]struct{}{
	BikeMode: {},
	PedMode:  {},
	AllModes: {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDayTypes lists the day types recognized in hourly profile payloads.
var ValidDayTypes = map[DayType]struct{}{
	WeekdayType:  {},
	SaturdayType: {},
	SundayType:   {},
}
