package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/lintdoc/internal/pylint"
	"github.com/temirov/lintdoc/internal/pyreverse"
	"github.com/temirov/lintdoc/internal/types"
	"github.com/temirov/lintdoc/internal/utils"
)

// Confidence levels accepted by pylint.
const (
	ConfidenceHigh             = "HIGH"
	ConfidenceInference        = "INFERENCE"
	ConfidenceInferenceFailure = "INFERENCE_FAILURE"
	ConfidenceUndefined        = "UNDEFINED"
)

// ErrInvalidConfiguration wraps every configuration validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Settings is the configuration of one build pass. It is constructed fresh
// for every pass and treated as read-only once validated.
type Settings struct {
	Project   string          `mapstructure:"project"`
	Target    string          `mapstructure:"target"`
	SourceDir string          `mapstructure:"source_dir"`
	OutputDir string          `mapstructure:"output_dir"`
	Format    string          `mapstructure:"format" validate:"omitempty,oneof=html markdown"`
	Lint      LintSettings    `mapstructure:"lint"`
	Diagram   DiagramSettings `mapstructure:"diagram"`
}

// LintSettings holds the six diagnostic tool options plus the executable.
type LintSettings struct {
	Debug      bool   `mapstructure:"debug"`
	Ignore     string `mapstructure:"ignore"`
	Jobs       string `mapstructure:"jobs" validate:"omitempty,number"`
	Confidence string `mapstructure:"confidence" validate:"omitempty,oneof=HIGH INFERENCE INFERENCE_FAILURE UNDEFINED"`
	Enable     string `mapstructure:"enable"`
	Disable    string `mapstructure:"disable"`
	Executable string `mapstructure:"executable"`
}

// DiagramSettings configures the diagram tool.
type DiagramSettings struct {
	Executable  string `mapstructure:"executable"`
	Format      string `mapstructure:"format"`
	ModuleNames bool   `mapstructure:"module_names"`
}

var settingsValidator = validator.New()

// Validate reports ErrInvalidConfiguration when a value falls outside its allowed set.
func (settings Settings) Validate() error {
	validationError := settingsValidator.Struct(settings)
	if validationError == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(validationError, &fieldErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, validationError)
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, describeFieldError(fieldError))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(messages, "; "))
}

func describeFieldError(fieldError validator.FieldError) string {
	switch fieldError.StructNamespace() {
	case "Settings.Lint.Confidence":
		return fmt.Sprintf("unsupported option value: %v (lint.confidence must be one of %s)", fieldError.Value(),
			strings.Join([]string{ConfidenceHigh, ConfidenceInference, ConfidenceInferenceFailure, ConfidenceUndefined}, ", "))
	case "Settings.Lint.Jobs":
		return fmt.Sprintf("lint.jobs must be a number, got %v", fieldError.Value())
	case "Settings.Format":
		return fmt.Sprintf("format must be %s or %s, got %v", types.FormatHTML, types.FormatMarkdown, fieldError.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fieldError.Namespace(), fieldError.Tag())
	}
}

// WithIgnorePatterns returns a copy of settings with patterns merged into the lint ignore list.
func (settings Settings) WithIgnorePatterns(patterns []string) Settings {
	if len(patterns) == 0 {
		return settings
	}
	merged := append(utils.SplitCommaList(settings.Lint.Ignore), patterns...)
	result := settings
	result.Lint.Ignore = utils.JoinCommaList(merged)
	return result
}

// LintOptions converts the settings into a pylint invocation for target.
func (settings Settings) LintOptions(target string) pylint.Options {
	return pylint.Options{
		Executable: settings.Lint.Executable,
		Ignore:     settings.Lint.Ignore,
		Jobs:       settings.Lint.Jobs,
		Confidence: settings.Lint.Confidence,
		Enable:     settings.Lint.Enable,
		Disable:    settings.Lint.Disable,
		Target:     target,
	}
}

// DiagramOptions returns the pyreverse defaults derived from the settings.
func (settings Settings) DiagramOptions() pyreverse.Options {
	return pyreverse.Options{
		Executable:   settings.Diagram.Executable,
		OutputFormat: settings.Diagram.Format,
		ModuleNames:  settings.Diagram.ModuleNames,
		Target:       settings.Target,
		ProjectName:  settings.Project,
	}
}

// MarshalLogObject exposes the settings as structured log fields.
func (settings Settings) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("project", settings.Project)
	encoder.AddString("target", settings.Target)
	encoder.AddString("ignore", settings.Lint.Ignore)
	encoder.AddString("jobs", settings.Lint.Jobs)
	encoder.AddString("confidence", settings.Lint.Confidence)
	encoder.AddString("enable", settings.Lint.Enable)
	encoder.AddString("disable", settings.Lint.Disable)
	return nil
}

var _ zapcore.ObjectMarshaler = Settings{}

// LogField returns the settings as a single zap field.
func (settings Settings) LogField() zap.Field {
	return zap.Object("settings", settings)
}
