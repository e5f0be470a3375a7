package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/temirov/lintdoc/internal/doctree"
)

// DefaultPreviewWidth is the word wrap column of terminal previews.
const DefaultPreviewWidth = 80

// PreviewOptions configures the terminal preview. An empty Style selects a
// style from the terminal background.
type PreviewOptions struct {
	Style string
	Width int
}

// Preview renders document for a terminal by passing its Markdown form through glamour.
func Preview(document *doctree.Document, options PreviewOptions) (string, error) {
	width := options.Width
	if width <= 0 {
		width = DefaultPreviewWidth
	}
	styleOption := glamour.WithAutoStyle()
	if options.Style != "" {
		styleOption = glamour.WithStandardStyle(options.Style)
	}
	renderer, rendererError := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(width))
	if rendererError != nil {
		return "", fmt.Errorf("create terminal renderer: %w", rendererError)
	}
	rendered, renderError := renderer.Render(MarkdownWriter{}.Render(document))
	if renderError != nil {
		return "", fmt.Errorf("preview %s: %w", document.Name, renderError)
	}
	return rendered, nil
}
