package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/stagedoor-ui/stagedoor/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.level")
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

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateStage()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateDemo()...)

	return errors
}

// validateStage validates the StageConfig
func (c *Config) validateStage() []ValidationError {
	var errors []ValidationError

	if c.Stage.DebugKinds != "" {
		if _, err := glob.Compile(c.Stage.DebugKinds); err != nil {
			errors = append(errors, ValidationError{
				Field:   "stage.debug_kinds",
				Value:   c.Stage.DebugKinds,
				Message: "must be a valid glob pattern",
			})
		}
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" {
		valid := false
		for _, level := range logging.ValidLevels() {
			if strings.EqualFold(c.Logging.Level, level) {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, ValidationError{
				Field:   "logging.level",
				Value:   c.Logging.Level,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
			})
		}
	}

	return errors
}

// validateDemo validates the DemoConfig
func (c *Config) validateDemo() []ValidationError {
	var errors []ValidationError

	if c.Demo.Title == "" {
		errors = append(errors, ValidationError{
			Field:   "demo.title",
			Value:   c.Demo.Title,
			Message: "must not be empty",
		})
	}

	return errors
}
