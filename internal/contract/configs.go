package contract

import (
	"errors"
	"fmt"
	"time"

	"github.com/sbcounts/aadv/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultTimeout     = 30 * time.Second
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a computation.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath  string
	Mode       schema.TravelMode
	Scale      float64

	ProfileURL     string
	ProfileDir     string
	HourlyProfile  string
	NormProfile    string
	ProfileTimeout time.Duration

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	BaseYear   int
	TargetYear int

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a shallow copy of the config, so per-request overrides
// never mutate the shared base config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Mode             string  `mapstructure:"mode"`
	Scale            float64 `mapstructure:"scale"`
	ProfileURL       string  `mapstructure:"profile-url"`
	ProfileDir       string  `mapstructure:"profile-dir"`
	HourlyProfile    string  `mapstructure:"hourly-profile"`
	NormProfile      string  `mapstructure:"norm-profile"`
	ProfileTimeout   string  `mapstructure:"profile-timeout"`
	Limit            int     `mapstructure:"limit"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Width            int     `mapstructure:"width"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`
	Emoji            string  `mapstructure:"emoji"`
	Color            string  `mapstructure:"color"`

	// --- Fields from compareCmd.Flags() ---
	BaseYear   int `mapstructure:"base-year"`
	TargetYear int `mapstructure:"target-year"`
}

// ProcessAndValidate turns raw input into a validated Config. It is the
// single choke point between viper and the engine.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = input.InputPathStr

	mode := schema.TravelMode(input.Mode)
	if _, ok := schema.ValidTravelModes[mode]; !ok {
		return fmt.Errorf("invalid mode %q: must be bike, ped or all", input.Mode)
	}
	cfg.Mode = mode

	if input.Scale <= 0 {
		return fmt.Errorf("invalid scale %v: must be positive", input.Scale)
	}
	cfg.Scale = input.Scale

	if input.ProfileURL == "" && input.ProfileDir == "" {
		return errors.New("either --profile-url or --profile-dir must be set")
	}
	cfg.ProfileURL = input.ProfileURL
	cfg.ProfileDir = input.ProfileDir

	cfg.HourlyProfile = input.HourlyProfile
	if cfg.HourlyProfile == "" {
		cfg.HourlyProfile = schema.DefaultProfileName
	}
	cfg.NormProfile = input.NormProfile
	if cfg.NormProfile == "" {
		cfg.NormProfile = schema.DefaultProfileName
	}

	cfg.ProfileTimeout = DefaultTimeout
	if input.ProfileTimeout != "" {
		d, err := time.ParseDuration(input.ProfileTimeout)
		if err != nil {
			return fmt.Errorf("invalid profile-timeout %q: %w", input.ProfileTimeout, err)
		}
		cfg.ProfileTimeout = d
	}

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("invalid limit %d: must be between 0 and %d", input.Limit, MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("invalid precision %d: must be between 0 and 10", input.Precision)
	}
	cfg.Precision = input.Precision

	output := schema.OutputMode(input.Output)
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output %q: must be text, csv, json or parquet", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}

	cfg.Width = input.Width

	backend := schema.DatabaseBackend(input.HistoryBackend)
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history-backend %q: must be sqlite, mysql, postgresql or none", input.HistoryBackend)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	cfg.BaseYear = input.BaseYear
	cfg.TargetYear = input.TargetYear

	cfg.UseEmojis = input.Emoji != "no"
	cfg.UseColors = input.Color != "no"

	return nil
}

// ValidateCompareYears checks the year pair for the compare command.
func ValidateCompareYears(cfg *Config) error {
	if cfg.BaseYear == 0 || cfg.TargetYear == 0 {
		return errors.New("--base-year and --target-year are required")
	}
	if cfg.BaseYear == cfg.TargetYear {
		return errors.New("--base-year and --target-year must differ")
	}
	return nil
}
