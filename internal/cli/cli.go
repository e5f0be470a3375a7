// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/lintdoc/internal/config"
	"github.com/temirov/lintdoc/internal/runner"
	"github.com/temirov/lintdoc/internal/services/clipboard"
	"github.com/temirov/lintdoc/internal/utils"
)

const (
	configFlagName        = "config"
	debugFlagName         = "debug"
	formatFlagName        = "format"
	copyFlagName          = "copy"
	versionTemplate       = "lintdoc version: {{.Version}}\n"
	rootUse               = "lintdoc"
	rootShortDescription  = "lintdoc embeds pylint and pyreverse results in documentation"
	rootLongDescription   = `lintdoc builds documentation from reStructuredText sources.
The message-list, package-diagram and class-diagram directives are replaced
with pylint messages and pyreverse diagrams of the configured target.
Settings come from lintdoc.yaml, LINTDOC_* environment variables and flags.`
	configFlagDescription = "path to a lintdoc.yaml file"
	debugFlagDescription  = "log lifecycle events and subprocess invocations"
	copyFlagDescription   = "copy the printed output to the clipboard"
	invalidFormatMessage  = "invalid format value '%s'"
)

// Dependencies are the collaborators of the command tree. Zero values select
// the system implementations.
type Dependencies struct {
	Runner           runner.Runner
	Copier           clipboard.Copier
	Logger           *zap.Logger
	WorkingDirectory string
}

type application struct {
	dependencies      Dependencies
	configurationPath string
	debugEnabled      bool
	logger            *zap.Logger
}

// Execute runs the lintdoc application.
func Execute() error {
	rootCommand := NewRootCommand(Dependencies{})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command with every subcommand attached.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	app := &application{dependencies: dependencies}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Version:      utils.GetApplicationVersion(),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.PersistentFlags().StringVar(&app.configurationPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &app.debugEnabled, debugFlagName, false, debugFlagDescription)
	rootCommand.AddCommand(
		app.newBuildCommand(),
		app.newLintCommand(),
		app.newDiagramCommand(),
		app.newPreviewCommand(),
		app.newInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// loadSettings reads a fresh Settings value for one command run. The logger
// is created on first use once the debug setting is known.
func (app *application) loadSettings(overrides map[string]any) (config.Settings, error) {
	if overrides == nil {
		overrides = map[string]any{}
	}
	if app.debugEnabled {
		overrides[config.KeyLintDebug] = true
	}
	settings, loadError := config.LoadSettings(config.LoadOptions{
		WorkingDirectory: app.dependencies.WorkingDirectory,
		ExplicitFilePath: app.configurationPath,
		Overrides:        overrides,
	})
	if loadError != nil {
		return config.Settings{}, loadError
	}
	if loggerError := app.ensureLogger(settings.Lint.Debug); loggerError != nil {
		return config.Settings{}, loggerError
	}
	app.logger.Debug("settings loaded", settings.LogField())
	return settings, nil
}

func (app *application) ensureLogger(debugEnabled bool) error {
	if app.logger != nil {
		return nil
	}
	if app.dependencies.Logger != nil {
		app.logger = app.dependencies.Logger
		return nil
	}
	logger, loggerError := utils.NewApplicationLogger(debugEnabled)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	app.logger = logger
	return nil
}

func (app *application) commandRunner() runner.Runner {
	if app.dependencies.Runner != nil {
		return app.dependencies.Runner
	}
	return runner.NewExecRunner(app.logger)
}

func (app *application) copier() clipboard.Copier {
	if app.dependencies.Copier != nil {
		return app.dependencies.Copier
	}
	return clipboard.NewService()
}

// setOverride records a flag value as a configuration override when the user set the flag.
func setOverride(command *cobra.Command, overrides map[string]any, flagName string, key string, value any) {
	if command.Flags().Changed(flagName) {
		overrides[key] = value
	}
}
