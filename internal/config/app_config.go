package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/lintdoc/internal/pylint"
	"github.com/temirov/lintdoc/internal/pyreverse"
	"github.com/temirov/lintdoc/internal/types"
	"github.com/temirov/lintdoc/internal/utils"
)

const (
	environmentPrefix = "LINTDOC"
	defaultSourceDir  = "docs"
	defaultOutputDir  = "docs/_build"
	defaultTarget     = "."
	defaultDiagram    = "dot"
)

// Configuration keys understood by LoadSettings.
const (
	KeyProject           = "project"
	KeyTarget            = "target"
	KeySourceDir         = "source_dir"
	KeyOutputDir         = "output_dir"
	KeyFormat            = "format"
	KeyLintDebug         = "lint.debug"
	KeyLintIgnore        = "lint.ignore"
	KeyLintJobs          = "lint.jobs"
	KeyLintConfidence    = "lint.confidence"
	KeyLintEnable        = "lint.enable"
	KeyLintDisable       = "lint.disable"
	KeyLintExecutable    = "lint.executable"
	KeyDiagramExecutable = "diagram.executable"
	KeyDiagramFormat     = "diagram.format"
	KeyDiagramModules    = "diagram.module_names"
)

// LoadOptions controls how configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// Overrides are applied last, typically from command line flags.
	Overrides map[string]any
}

// LoadSettings builds a fresh Settings value from defaults, the global file,
// the local file, LINTDOC_* environment variables and overrides, in that order.
// The result is validated; an invalid confidence level is a fatal error.
func LoadSettings(options LoadOptions) (Settings, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	reader := newSettingsReader()

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		if mergeErr := mergeConfigurationFile(reader, globalPath); mergeErr != nil {
			return Settings{}, mergeErr
		}
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return Settings{}, resolveErr
	}
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return Settings{}, fmt.Errorf("configuration file %s: %w", localPath, statErr)
		}
	}
	if mergeErr := mergeConfigurationFile(reader, localPath); mergeErr != nil {
		return Settings{}, mergeErr
	}

	for key, value := range options.Overrides {
		reader.Set(key, value)
	}

	var settings Settings
	if decodeErr := reader.Unmarshal(&settings); decodeErr != nil {
		return Settings{}, fmt.Errorf("decode configuration: %w", decodeErr)
	}
	if strings.TrimSpace(settings.Project) == "" {
		detectedName, detectError := DetectProjectName(workingDirectory)
		if detectError != nil {
			return Settings{}, detectError
		}
		settings.Project = detectedName
	}
	settings.SourceDir = resolveRelative(workingDirectory, settings.SourceDir)
	settings.OutputDir = resolveRelative(workingDirectory, settings.OutputDir)
	settings.Target = resolveRelative(workingDirectory, settings.Target)
	settings.Format = strings.ToLower(settings.Format)
	settings.Lint.Confidence = strings.TrimSpace(settings.Lint.Confidence)

	if validationErr := settings.Validate(); validationErr != nil {
		return Settings{}, validationErr
	}
	return settings, nil
}

func newSettingsReader() *viper.Viper {
	reader := viper.New()
	reader.SetConfigType("yaml")
	reader.SetDefault(KeyProject, "")
	reader.SetDefault(KeyTarget, defaultTarget)
	reader.SetDefault(KeySourceDir, defaultSourceDir)
	reader.SetDefault(KeyOutputDir, defaultOutputDir)
	reader.SetDefault(KeyFormat, types.FormatHTML)
	reader.SetDefault(KeyLintDebug, false)
	reader.SetDefault(KeyLintIgnore, "")
	reader.SetDefault(KeyLintJobs, "")
	reader.SetDefault(KeyLintConfidence, "")
	reader.SetDefault(KeyLintEnable, "")
	reader.SetDefault(KeyLintDisable, "")
	reader.SetDefault(KeyLintExecutable, pylint.DefaultExecutable)
	reader.SetDefault(KeyDiagramExecutable, pyreverse.DefaultExecutable)
	reader.SetDefault(KeyDiagramFormat, defaultDiagram)
	reader.SetDefault(KeyDiagramModules, false)
	reader.SetEnvPrefix(environmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	reader.AutomaticEnv()
	return reader
}

func mergeConfigurationFile(reader *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return fmt.Errorf("configuration path %s is a directory", path)
	}
	reader.SetConfigFile(path)
	if mergeErr := reader.MergeInConfig(); mergeErr != nil {
		return fmt.Errorf("read configuration from %s: %w", path, mergeErr)
	}
	return nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func resolveRelative(workingDirectory string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDirectory, path)
}
