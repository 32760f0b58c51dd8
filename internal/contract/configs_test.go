package contract

import (
	"testing"
	"time"

	"github.com/sbcounts/aadv/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes every validation rule.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputPathStr:   "counts.json",
		Mode:           "all",
		Scale:          24,
		ProfileDir:     "./profiles",
		Limit:          DefaultResultLimit,
		Precision:      DefaultPrecision,
		Output:         "text",
		HistoryBackend: "sqlite",
		Emoji:          "yes",
		Color:          "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	t.Run("valid input with defaults", func(t *testing.T) {
		var cfg Config
		require.NoError(t, ProcessAndValidate(&cfg, validInput()))

		assert.Equal(t, "counts.json", cfg.InputPath)
		assert.Equal(t, schema.AllModes, cfg.Mode)
		assert.Equal(t, schema.DefaultProfileName, cfg.HourlyProfile)
		assert.Equal(t, schema.DefaultProfileName, cfg.NormProfile)
		assert.Equal(t, DefaultTimeout, cfg.ProfileTimeout)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.True(t, cfg.UseEmojis)
		assert.True(t, cfg.UseColors)
	})

	t.Run("invalid mode", func(t *testing.T) {
		input := validInput()
		input.Mode = "scooter"
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid mode")
	})

	t.Run("non-positive scale", func(t *testing.T) {
		input := validInput()
		input.Scale = 0
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid scale")
	})

	t.Run("profile source required", func(t *testing.T) {
		input := validInput()
		input.ProfileDir = ""
		input.ProfileURL = ""
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "--profile-url or --profile-dir")
	})

	t.Run("custom profile timeout", func(t *testing.T) {
		input := validInput()
		input.ProfileTimeout = "5s"
		var cfg Config
		require.NoError(t, ProcessAndValidate(&cfg, input))
		assert.Equal(t, 5*time.Second, cfg.ProfileTimeout)
	})

	t.Run("unparseable profile timeout", func(t *testing.T) {
		input := validInput()
		input.ProfileTimeout = "soon"
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid profile-timeout")
	})

	t.Run("limit bounds", func(t *testing.T) {
		input := validInput()
		input.Limit = -1
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid limit")

		input.Limit = MaxResultLimit + 1
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid limit")
	})

	t.Run("precision bounds", func(t *testing.T) {
		input := validInput()
		input.Precision = 11
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid precision")
	})

	t.Run("invalid output mode", func(t *testing.T) {
		input := validInput()
		input.Output = "xml"
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid output")
	})

	t.Run("parquet requires an output file", func(t *testing.T) {
		input := validInput()
		input.Output = "parquet"
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "requires --output-file")

		input.OutputFile = "out.parquet"
		assert.NoError(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("invalid history backend", func(t *testing.T) {
		input := validInput()
		input.HistoryBackend = "mongodb"
		assert.ErrorContains(t, ProcessAndValidate(&Config{}, input), "invalid history-backend")
	})

	t.Run("emoji and color opt out", func(t *testing.T) {
		input := validInput()
		input.Emoji = "no"
		input.Color = "no"
		var cfg Config
		require.NoError(t, ProcessAndValidate(&cfg, input))
		assert.False(t, cfg.UseEmojis)
		assert.False(t, cfg.UseColors)
	})
}

func TestValidateCompareYears(t *testing.T) {
	t.Run("both years required", func(t *testing.T) {
		err := ValidateCompareYears(&Config{BaseYear: 2022})
		assert.ErrorContains(t, err, "required")
	})

	t.Run("years must differ", func(t *testing.T) {
		err := ValidateCompareYears(&Config{BaseYear: 2023, TargetYear: 2023})
		assert.ErrorContains(t, err, "must differ")
	})

	t.Run("valid pair", func(t *testing.T) {
		assert.NoError(t, ValidateCompareYears(&Config{BaseYear: 2022, TargetYear: 2023}))
	})
}

func TestConfigClone(t *testing.T) {
	base := &Config{InputPath: "a.json", Mode: schema.BikeMode, ResultLimit: 10}

	clone := base.Clone()
	clone.InputPath = "b.json"
	clone.ResultLimit = 99

	assert.Equal(t, "a.json", base.InputPath)
	assert.Equal(t, 10, base.ResultLimit)
	assert.Equal(t, "b.json", clone.InputPath)
}
