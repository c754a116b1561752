package schema

// Custom string types for type safety.
type (
	// MetricKey identifies a tracked account metric or chart view.
	MetricKey string

	// Direction represents the sign of a metric change.
	Direction string

	// OutputMode represents the format of the output.
	OutputMode string

	// ChartKind is a pure rendering hint for a chart view.
	ChartKind string

	// DatabaseBackend represents the database backend for local storage.
	DatabaseBackend string

	// ExportFormat represents a server-rendered export format.
	ExportFormat string

	// LoadOutcome records how a load request ended.
	LoadOutcome string
)

// All chart views supported.
const (
	MetricStars         MetricKey = "stars"
	MetricFollowers     MetricKey = "followers"
	MetricRepos         MetricKey = "repos"
	MetricCommits       MetricKey = "commits"
	MetricContributions MetricKey = "contributions"
	MetricLanguages     MetricKey = "languages"
)

// Change directions.
const (
	PositiveDirection Direction = "positive"
	NegativeDirection Direction = "negative"
	NeutralDirection  Direction = "neutral"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All chart kinds supported.
const (
	LineChart ChartKind = "line" // default
	BarChart  ChartKind = "bar"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All export formats supported. CSV and JSON are rendered server-side;
// Parquet is built locally from the fetched range.
const (
	CSVExport     ExportFormat = "csv"
	JSONExport    ExportFormat = "json"
	ParquetExport ExportFormat = "parquet"
)

// All load outcomes recorded by the load history store.
const (
	LoadApplied    LoadOutcome = "applied"
	LoadEmpty      LoadOutcome = "empty"
	LoadSuperseded LoadOutcome = "superseded"
	LoadFailed     LoadOutcome = "failed"
)

// SummaryMetrics lists the metrics that get first-vs-last change summaries.
var SummaryMetrics = []MetricKey{MetricStars, MetricFollowers, MetricRepos, MetricCommits}

// SeriesMetrics lists the date-keyed chart views, in display order.
var SeriesMetrics = []MetricKey{MetricStars, MetricRepos, MetricCommits, MetricContributions, MetricFollowers}

// ValidSeriesMetrics lists all valid date-keyed chart views.
var ValidSeriesMetrics = map[MetricKey]struct{}{
	MetricStars:         {},
	MetricRepos:         {},
	MetricCommits:       {},
	MetricContributions: {},
	MetricFollowers:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidChartKinds lists all valid chart kinds.
var ValidChartKinds = map[ChartKind]struct{}{
	LineChart: {},
	BarChart:  {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidExportFormats lists all valid export formats.
var ValidExportFormats = map[ExportFormat]struct{}{
	CSVExport:     {},
	JSONExport:    {},
	ParquetExport: {},
}

// FileExtension returns the filename extension for an export format.
func (f ExportFormat) FileExtension() string {
	switch f {
	case JSONExport:
		return ".json"
	case ParquetExport:
		return ".parquet"
	default:
		return ".csv"
	}
}
