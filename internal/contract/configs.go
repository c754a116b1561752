package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/averykuo/ghpulse/schema"
)

// Default values for configuration.
const (
	DefaultRangeDays  = 30
	DefaultPrecision  = 1
	DefaultAPIURL     = "https://api.ghpulse.dev"
	MaxRangeDays      = 366
	MinRefreshSeconds = 5
)

// DateTimeFormat is the default date time representation for absolute inputs.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	APIURL    string
	Token     string
	StartDate schema.CalDate
	EndDate   schema.CalDate

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	Metric schema.MetricKey // trend view selection
	Chart  schema.ChartKind // rendering hint, orthogonal to series values

	ExportFormat schema.ExportFormat

	Refresh time.Duration // dashboard refresh interval (0 = single load)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	APIURL           string `mapstructure:"api-url"`
	Token            string `mapstructure:"token"`
	Start            string `mapstructure:"start"`
	End              string `mapstructure:"end"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from dashboardCmd.Flags() ---
	Refresh string `mapstructure:"refresh"`

	// --- Fields from trendCmd.Flags() ---
	Metric string `mapstructure:"metric"`
	Chart  string `mapstructure:"chart"`

	// --- Fields from exportCmd.Flags() ---
	Format string `mapstructure:"format"`
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithRange returns a copy of the Config with a new date range applied.
func (c *Config) CloneWithRange(start, end schema.CalDate) *Config {
	clone := c.Clone()
	clone.StartDate = start
	clone.EndDate = end
	return clone
}

// ProcessAndValidate validates and converts the raw input into the final Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-date related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Token = strings.TrimSpace(input.Token)

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. API URL Validation ---
	apiURL := strings.TrimRight(strings.TrimSpace(input.APIURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid api-url '%s'. Expected an absolute http(s) URL", input.APIURL)
	}
	cfg.APIURL = apiURL

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 3. Metric and Chart Validation ---
	if input.Metric != "" {
		cfg.Metric = schema.MetricKey(strings.ToLower(input.Metric))
		if _, ok := schema.ValidSeriesMetrics[cfg.Metric]; !ok {
			return fmt.Errorf("invalid metric '%s'. must be stars, repos, commits, contributions, followers", input.Metric)
		}
	}

	chart := input.Chart
	if chart == "" {
		chart = string(schema.LineChart)
	}
	cfg.Chart = schema.ChartKind(strings.ToLower(chart))
	if _, ok := schema.ValidChartKinds[cfg.Chart]; !ok {
		return fmt.Errorf("invalid chart kind '%s'. must be line or bar", input.Chart)
	}

	// --- 4. Export Format Validation ---
	if input.Format != "" {
		cfg.ExportFormat = schema.ExportFormat(strings.ToLower(input.Format))
		if _, ok := schema.ValidExportFormats[cfg.ExportFormat]; !ok {
			return fmt.Errorf("invalid export format '%s'. must be csv, json or parquet", input.Format)
		}
	}

	// --- 5. Refresh Interval Validation ---
	if input.Refresh != "" {
		refresh, err := time.ParseDuration(input.Refresh)
		if err != nil {
			return fmt.Errorf("invalid refresh interval '%s': %w", input.Refresh, err)
		}
		if refresh < MinRefreshSeconds*time.Second {
			return fmt.Errorf("refresh interval must be at least %ds (received %s)", MinRefreshSeconds, refresh)
		}
		cfg.Refresh = refresh
	}

	return nil
}

// processDateRange handles date parsing and range validation.
// Inputs accept absolute ISO8601 timestamps, plain YYYY-MM-DD dates, or
// relative forms like "2 weeks ago". The resolved range is inclusive.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.EndDate = schema.DateOf(now)
	cfg.StartDate = schema.DateOf(now.Add(-DefaultRangeDays * 24 * time.Hour))

	if input.Start != "" {
		d, err := ParseDateInput(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date '%s'. Expected YYYY-MM-DD, ISO8601 or 'N [units] ago': %w", input.Start, err)
		}
		cfg.StartDate = d
	}

	if input.End != "" {
		d, err := ParseDateInput(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date '%s'. Expected YYYY-MM-DD, ISO8601 or 'N [units] ago': %w", input.End, err)
		}
		cfg.EndDate = d
	}

	// --- Final Validation ---
	if cfg.StartDate.After(cfg.EndDate) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.StartDate, cfg.EndDate)
	}
	if cfg.EndDate.Time().Sub(cfg.StartDate.Time()) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("date range cannot exceed %d days", MaxRangeDays)
	}

	return nil
}

// validateBackendConfigs validates the cache and history store backends.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cacheBackend := schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. Must be sqlite, mysql, postgresql, or none", input.CacheBackend)
	}
	cfg.CacheBackend = cacheBackend
	cfg.CacheDBConnect = input.CacheDBConnect

	historyBackend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[historyBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. Must be sqlite, mysql, postgresql, or none", input.HistoryBackend)
	}
	cfg.HistoryBackend = historyBackend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Cache and history must not share the same database. For SQLite,
	// resolve to actual file paths to catch default path conflicts.
	if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend != schema.NoneBackend {
		cacheConn := cfg.CacheDBConnect
		historyConn := cfg.HistoryDBConnect
		if cfg.CacheBackend == schema.SQLiteBackend {
			if cacheConn == "" {
				cacheConn = GetCacheDBFilePath()
			}
			if historyConn == "" {
				historyConn = GetHistoryDBFilePath()
			}
		}
		if cacheConn != "" && cacheConn == historyConn {
			return fmt.Errorf("cache and history storage must use different databases. Both resolve to %q", cacheConn)
		}
	}

	return nil
}

// ValidateDatabaseConnectionString checks that a connection string is present
// and plausible for server-backed backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("mysql backend requires a connection string (user:pass@tcp(host:port)/dbname)")
		}
		if !strings.Contains(connStr, "@") {
			return fmt.Errorf("mysql connection string looks malformed. Expected user:pass@tcp(host:port)/dbname")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("postgresql backend requires a connection string (host=... port=... user=... dbname=...)")
		}
	default:
		// sqlite takes an optional file path; none takes nothing
	}
	return nil
}
