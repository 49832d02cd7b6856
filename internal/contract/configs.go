package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fragmede/fundcli/schema"
)

// Default values for configuration.
const (
	DefaultAmount      = "10.00"
	DefaultMinAmount   = "1.00"
	DefaultMaxProjects = 10
	DefaultLimit       = 20
	MaxResultLimit     = 1000
)

// DateFormat is the default date representation in reports.
const DateFormat = "2006-01-02"

// DateTimeFormat is the default date time representation.
const DateTimeFormat = "2006-01-02 15:04:05"

// Config holds the runtime configuration for one invocation.
// This struct remains the "final, validated" config.
type Config struct {
	Period          schema.TimePeriod
	Hostname        string
	IncludeBuiltins bool
	Limit           int
	ShowUnknown     bool

	Amount      decimal.Decimal
	MinAmount   decimal.Decimal
	MaxProjects int
	Strategy    schema.WeightStrategy

	Output     schema.OutputMode
	OutputFile string
	OpenLinks  bool

	HistoryDBPath string

	ClassifyBackend   schema.DatabaseBackend
	ClassifyDBConnect string // Please use env var as this is plaintext

	// CustomMappings layers user-defined executable -> project id
	// pairs over the bundled registry.
	CustomMappings map[string]string

	ExcludeHostnames   []string
	ExcludeExecutables []string

	UseColors bool // Enable colored labels in table output
	Width     int  // Terminal width override (0 = auto-detect)
}

// Clone returns a deep copy so per-request overrides never leak back
// into the base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.CustomMappings != nil {
		clone.CustomMappings = maps.Clone(c.CustomMappings)
	}
	if c.ExcludeHostnames != nil {
		clone.ExcludeHostnames = make([]string, len(c.ExcludeHostnames))
		copy(clone.ExcludeHostnames, c.ExcludeHostnames)
	}
	if c.ExcludeExecutables != nil {
		clone.ExcludeExecutables = make([]string, len(c.ExcludeExecutables))
		copy(clone.ExcludeExecutables, c.ExcludeExecutables)
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Period            string `mapstructure:"period"`
	Hostname          string `mapstructure:"hostname"`
	IncludeBuiltins   bool   `mapstructure:"include-builtins"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	HistoryDB         string `mapstructure:"history-db"`
	ClassifyBackend   string `mapstructure:"classify-backend"`
	ClassifyDBConnect string `mapstructure:"classify-db-connect"`
	Color             string `mapstructure:"color"`
	Width             int    `mapstructure:"width"`

	// --- Fields from analyzeCmd.Flags() ---
	Limit       int  `mapstructure:"limit"`
	ShowUnknown bool `mapstructure:"unknown"`

	// --- Fields from recommendCmd / donateCmd flags ---
	Amount      string `mapstructure:"amount"`
	MinAmount   string `mapstructure:"min-amount"`
	MaxProjects int    `mapstructure:"max-projects"`
	Weight      string `mapstructure:"weight"`
	Open        bool   `mapstructure:"open"`

	// --- Sections from the config file only ---
	CustomMappings     map[string]string `mapstructure:"custom_mappings"`
	ExcludeHostnames   []string          `mapstructure:"exclude_hostnames"`
	ExcludeExecutables []string          `mapstructure:"exclude_executables"`
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processMoneyInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-money fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Hostname = input.Hostname
	cfg.IncludeBuiltins = input.IncludeBuiltins
	cfg.OutputFile = input.OutputFile
	cfg.ShowUnknown = input.ShowUnknown
	cfg.OpenLinks = input.Open
	cfg.Width = input.Width
	cfg.CustomMappings = input.CustomMappings
	cfg.ExcludeHostnames = input.ExcludeHostnames
	cfg.ExcludeExecutables = input.ExcludeExecutables

	cfg.Period = schema.TimePeriod(strings.ToLower(input.Period))
	if _, ok := schema.ValidTimePeriods[cfg.Period]; !ok {
		return fmt.Errorf("invalid period '%s'. must be day, week, month, year, all", input.Period)
	}

	cfg.Strategy = schema.WeightStrategy(strings.ToLower(input.Weight))
	if _, ok := schema.ValidWeightStrategies[cfg.Strategy]; !ok {
		return fmt.Errorf("invalid weighting strategy '%s'. must be count, duration, success, combined", input.Weight)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be table, csv, json, markdown", input.Output)
	}

	cfg.Limit = input.Limit
	if cfg.Limit < 1 || cfg.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d", MaxResultLimit)
	}

	cfg.MaxProjects = input.MaxProjects
	if cfg.MaxProjects < 1 {
		return fmt.Errorf("max-projects must be at least 1")
	}

	cfg.HistoryDBPath = input.HistoryDB
	if cfg.HistoryDBPath == "" {
		cfg.HistoryDBPath = GetHistoryDBPath()
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// processMoneyInputs parses the currency fields. The allocator itself
// accepts any total, so the positivity constraint lives here.
func processMoneyInputs(cfg *Config, input *ConfigRawInput) error {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", input.Amount, err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	cfg.Amount = amount

	minAmount, err := decimal.NewFromString(input.MinAmount)
	if err != nil {
		return fmt.Errorf("invalid min-amount '%s': %w", input.MinAmount, err)
	}
	if minAmount.IsNegative() {
		return fmt.Errorf("min-amount must not be negative")
	}
	cfg.MinAmount = minAmount

	return nil
}

// validateBackendConfig validates the classify store backend selection.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.ClassifyBackend = schema.DatabaseBackend(strings.ToLower(input.ClassifyBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.ClassifyBackend]; !ok {
		return fmt.Errorf("invalid classify backend '%s'. must be sqlite, mysql, postgresql, none", input.ClassifyBackend)
	}
	cfg.ClassifyDBConnect = input.ClassifyDBConnect
	return ValidateDatabaseConnectionString(cfg.ClassifyBackend, cfg.ClassifyDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("classify-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("classify-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
