package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/lintdoc/internal/build"
	"github.com/temirov/lintdoc/internal/config"
	"github.com/temirov/lintdoc/internal/extension"
	"github.com/temirov/lintdoc/internal/output"
	"github.com/temirov/lintdoc/internal/types"
)

const (
	buildUse              = "build [source-dir]"
	buildShortDescription = "build the documentation"
	buildLongDescription  = `Parse every .rst document under the source directory, replace the analysis
directives with pylint and pyreverse results and write HTML or Markdown into
the output directory.`
	buildUsageExample = `  # Build docs/ into docs/_build as HTML
  lintdoc build

  # Build Markdown from a custom source directory
  lintdoc build --format markdown --output-dir site guides`

	outputDirectoryFlagName        = "output-dir"
	progressFlagName               = "progress"
	documentFormatFlagDescription  = "document format: html or markdown"
	outputDirectoryFlagDescription = "directory receiving the written documents"
	progressFlagDescription        = "progress output: raw or json"
)

func (app *application) newBuildCommand() *cobra.Command {
	var documentFormat string
	var outputDirectory string
	var progressFormat string

	buildCommand := &cobra.Command{
		Use:     buildUse,
		Short:   buildShortDescription,
		Long:    buildLongDescription,
		Example: buildUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			progressFormatLower := strings.ToLower(progressFormat)
			if progressFormatLower != types.FormatRaw && progressFormatLower != types.FormatJSON {
				return fmt.Errorf(invalidFormatMessage, progressFormat)
			}
			overrides := map[string]any{}
			if len(arguments) == 1 {
				overrides[config.KeySourceDir] = arguments[0]
			}
			setOverride(command, overrides, formatFlagName, config.KeyFormat, documentFormat)
			setOverride(command, overrides, outputDirectoryFlagName, config.KeyOutputDir, outputDirectory)
			settings, settingsError := app.loadSettings(overrides)
			if settingsError != nil {
				return settingsError
			}

			var progress output.StreamRenderer
			if progressFormatLower == types.FormatJSON {
				progress = output.NewJSONStreamRenderer(command.OutOrStdout(), command.ErrOrStderr())
			} else {
				progress = output.NewRawStreamRenderer(command.OutOrStdout(), command.ErrOrStderr())
			}
			analysis := extension.New(app.commandRunner(), app.logger)
			if _, buildError := build.NewBuilder(app.logger, analysis).Build(command.Context(), settings, progress); buildError != nil {
				return buildError
			}
			return progress.Flush()
		},
	}
	buildCommand.Flags().StringVar(&documentFormat, formatFlagName, types.FormatHTML, documentFormatFlagDescription)
	buildCommand.Flags().StringVar(&outputDirectory, outputDirectoryFlagName, "", outputDirectoryFlagDescription)
	buildCommand.Flags().StringVar(&progressFormat, progressFlagName, types.FormatRaw, progressFlagDescription)
	return buildCommand
}
