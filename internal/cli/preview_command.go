package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/extension"
	"github.com/temirov/lintdoc/internal/render"
	"github.com/temirov/lintdoc/internal/utils"
)

const (
	previewUse              = "preview <document.rst>"
	previewShortDescription = "render one document in the terminal"
	previewLongDescription  = `Resolve the analysis directives of a single document and print it to the
terminal as styled Markdown.`
	previewUsageExample = `  lintdoc preview docs/api.rst --style dark --width 100`

	styleFlagName        = "style"
	widthFlagName        = "width"
	styleFlagDescription = "glamour style such as dark, light or notty; empty selects one automatically"
	widthFlagDescription = "word wrap column"
)

func (app *application) newPreviewCommand() *cobra.Command {
	var style string
	var width int

	previewCommand := &cobra.Command{
		Use:     previewUse,
		Short:   previewShortDescription,
		Long:    previewLongDescription,
		Example: previewUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := app.loadSettings(nil)
			if settingsError != nil {
				return settingsError
			}
			documentPath := arguments[0]
			if !filepath.IsAbs(documentPath) && app.dependencies.WorkingDirectory != "" {
				documentPath = filepath.Join(app.dependencies.WorkingDirectory, documentPath)
			}
			// #nosec G304
			source, readError := os.ReadFile(documentPath)
			if readError != nil {
				return fmt.Errorf("read document %s: %w", documentPath, readError)
			}
			documentName := strings.TrimSuffix(filepath.Base(documentPath), utils.SourceDocumentExtension)

			analysis := extension.New(app.commandRunner(), app.logger)
			if initializeError := analysis.OnBuilderInitialized(settings); initializeError != nil {
				return initializeError
			}
			document, parseError := doctree.Parse(documentName, string(source), analysis.Directives())
			if parseError != nil {
				return parseError
			}
			resolved, resolveError := analysis.OnDoctreeResolved(command.Context(), document, documentName)
			if resolveError != nil {
				return resolveError
			}
			rendered, previewError := render.Preview(resolved, render.PreviewOptions{Style: style, Width: width})
			if previewError != nil {
				return previewError
			}
			_, writeError := fmt.Fprint(command.OutOrStdout(), rendered)
			return writeError
		},
	}
	previewCommand.Flags().StringVar(&style, styleFlagName, "", styleFlagDescription)
	previewCommand.Flags().IntVar(&width, widthFlagName, render.DefaultPreviewWidth, widthFlagDescription)
	return previewCommand
}
