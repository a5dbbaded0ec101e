package procutil

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvVar names an environment variable.
type EnvVar string

const (
	// EnvLogLevel overrides log.level.
	EnvLogLevel EnvVar = "FIRINDEX_LOG_LEVEL"
	// EnvLogFormat overrides log.format.
	EnvLogFormat EnvVar = "FIRINDEX_LOG_FORMAT"
	// EnvWatch overrides watch.enabled.
	EnvWatch EnvVar = "FIRINDEX_WATCH"
	// EnvWatchDebounce overrides watch.debounce.
	EnvWatchDebounce EnvVar = "FIRINDEX_WATCH_DEBOUNCE"
	// EnvMetricsAddr overrides metrics.addr.
	EnvMetricsAddr EnvVar = "FIRINDEX_METRICS_ADDR"
)

// LookupEnv returns the value of a non-empty variable.
func LookupEnv(name EnvVar) (string, bool) {
	val, ok := os.LookupEnv(string(name))
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// LookupBoolEnv reads true/1 and false/0.  Anything else yields
// defaultValue.
func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := LookupEnv(name); ok {
		switch strings.ToLower(val) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	}
	return defaultValue
}

// LookupDurationEnv parses the variable with time.ParseDuration.
func LookupDurationEnv(name EnvVar, defaultValue time.Duration) (time.Duration, error) {
	val, ok := LookupEnv(name)
	if !ok {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}
