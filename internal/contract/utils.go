package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sbcounts/aadv/schema"
)

// Volume label constants.
const (
	HeavyValue    = "Heavy"    // major corridor volumes
	ModerateValue = "Moderate" // steady daily traffic
	LightValue    = "Light"    // low but regular use
	MinimalValue  = "Minimal"  // near-idle counter
)

// Color variables for console output.
var (
	HeavyColor    = color.New(color.FgRed, color.Bold)
	ModerateColor = color.New(color.FgYellow)
	LightColor    = color.New(color.FgCyan)
	MinimalColor  = color.New(color.FgWhite)

	expansionColor = color.New(color.FgGreen)
	fallbackColor  = color.New(color.FgYellow, color.Bold)
)

// GetPlainVolumeLabel returns a plain text label for an AADV level. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainVolumeLabel(aadv float64) string {
	switch {
	case aadv >= 500:
		return HeavyValue
	case aadv >= 150:
		return ModerateValue
	case aadv >= 25:
		return LightValue
	default:
		return MinimalValue
	}
}

// GetColorVolumeLabel returns a colored label for console table output.
func GetColorVolumeLabel(aadv float64) string {
	text := GetPlainVolumeLabel(aadv)
	switch text {
	case HeavyValue:
		return HeavyColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case LightValue:
		return LightColor.Sprint(text)
	default:
		return MinimalColor.Sprint(text)
	}
}

// GetMethodLabel renders the estimation method, colored when requested so
// fallback results stand out in tables.
func GetMethodLabel(method schema.Method, useColors bool) string {
	if !useColors {
		return string(method)
	}
	if method == schema.FallbackMethod {
		return fallbackColor.Sprint(string(method))
	}
	return expansionColor.Sprint(string(method))
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s\n", msg)
}
