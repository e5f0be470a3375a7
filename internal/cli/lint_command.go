package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/lintdoc/internal/config"
	"github.com/temirov/lintdoc/internal/output"
	"github.com/temirov/lintdoc/internal/pylint"
	"github.com/temirov/lintdoc/internal/services/clipboard"
	"github.com/temirov/lintdoc/internal/types"
)

const (
	lintUse              = "lint [target]"
	lintShortDescription = "run pylint and print its messages"
	lintLongDescription  = `Run pylint on the target with the configured options and print the parsed
messages. Use --format to select raw, json, xml or yaml output.`
	lintUsageExample = `  # Print messages for the configured target as YAML
  lintdoc lint --format yaml

  # Show only the first message for one module and copy it
  lintdoc lint --first --copy shop/models.py`

	firstFlagName              = "first"
	reportFormatDescription    = "report format: raw, json, xml or yaml"
	firstFlagDescription       = "stop after the first message"
	defaultReportFormat        = types.FormatRaw
	unsupportedReportFormatErr = "invalid format value '%s'; expected raw, json, xml or yaml"
)

func isSupportedReportFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML, types.FormatYAML:
		return true
	default:
		return false
	}
}

func (app *application) newLintCommand() *cobra.Command {
	var reportFormat string
	var firstOnly bool
	var copyEnabled bool

	lintCommand := &cobra.Command{
		Use:     lintUse,
		Short:   lintShortDescription,
		Long:    lintLongDescription,
		Example: lintUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			reportFormatLower := strings.ToLower(reportFormat)
			if !isSupportedReportFormat(reportFormatLower) {
				return fmt.Errorf(unsupportedReportFormatErr, reportFormat)
			}
			overrides := map[string]any{}
			if len(arguments) == 1 {
				overrides[config.KeyTarget] = arguments[0]
			}
			settings, settingsError := app.loadSettings(overrides)
			if settingsError != nil {
				return settingsError
			}
			ignorePatterns, ignoreError := config.LoadSourceIgnorePatterns(settings.SourceDir, settings.OutputDir)
			if ignoreError != nil {
				return ignoreError
			}
			settings = settings.WithIgnorePatterns(ignorePatterns.Lint)

			parser := pylint.Parser{Mode: pylint.ModeScanAll}
			if firstOnly {
				parser.Mode = pylint.ModeFirstMatch
			}
			analyzer := pylint.NewAnalyzer(app.commandRunner(), parser, app.logger)
			records, analyzeError := analyzer.Analyze(command.Context(), settings.LintOptions(settings.Target), "")
			if analyzeError != nil {
				return analyzeError
			}
			rendered, renderError := output.RenderRecords(reportFormatLower, records)
			if renderError != nil {
				return renderError
			}
			return app.print(command.OutOrStdout(), rendered, copyEnabled)
		},
	}
	lintCommand.Flags().StringVar(&reportFormat, formatFlagName, defaultReportFormat, reportFormatDescription)
	registerBooleanFlag(lintCommand.Flags(), &firstOnly, firstFlagName, false, firstFlagDescription)
	registerBooleanFlag(lintCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	return lintCommand
}

// print writes text to writer and, when copyEnabled, to the clipboard.
func (app *application) print(writer io.Writer, text string, copyEnabled bool) error {
	if !copyEnabled {
		_, writeError := io.WriteString(writer, text)
		return writeError
	}
	tee := clipboard.NewTeeWriter(writer, app.copier())
	if _, writeError := io.WriteString(tee, text); writeError != nil {
		return writeError
	}
	return tee.Copy()
}
