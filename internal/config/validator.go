package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "cache.ttl_minutes")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Cache.TTLMinutes < 0 {
		errors = append(errors, ValidationError{
			Field:   "cache.ttl_minutes",
			Value:   c.Cache.TTLMinutes,
			Message: "must be non-negative",
		})
	}

	if c.Analysis.RecentGames < 1 {
		errors = append(errors, ValidationError{
			Field:   "analysis.recent_games",
			Value:   c.Analysis.RecentGames,
			Message: "must be at least 1",
		})
	}

	errors = append(errors, c.validatePredictionWeight("momentum", c.Analysis.Prediction.Momentum)...)
	errors = append(errors, c.validatePredictionWeight("home_field", c.Analysis.Prediction.HomeField)...)
	errors = append(errors, c.validatePredictionWeight("injury_penalty", c.Analysis.Prediction.InjuryPenalty)...)
	errors = append(errors, c.validatePredictionWeight("weather_shrink", c.Analysis.Prediction.WeatherShrink)...)

	if c.Pipeline.MaxParallel < 1 {
		errors = append(errors, ValidationError{
			Field:   "pipeline.max_parallel",
			Value:   c.Pipeline.MaxParallel,
			Message: "must be at least 1",
		})
	}

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validatePredictionWeight(name string, v float64) []ValidationError {
	if v < 0 || v > 1 {
		return []ValidationError{{
			Field:   "analysis.prediction." + name,
			Value:   v,
			Message: "must be between 0 and 1",
		}}
	}
	return nil
}
