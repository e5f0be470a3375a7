package extension

import (
	"encoding/base64"
	"fmt"
	"html"

	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/pyreverse"
	"github.com/temirov/lintdoc/internal/types"
)

const (
	formatDot      = "dot"
	formatSVG      = "svg"
	formatPNG      = "png"
	formatMermaid  = "mmd"
	formatPlantUML = "puml"

	languageMermaid  = "mermaid"
	languagePlantUML = "plantuml"

	missingDiagramFormat = "diagram not generated: %s"
	imageTagFormat       = `<img alt="%s" src="data:image/%s;base64,%s"/>`
)

// EmbedDiagram converts a generated diagram into a document node. Dot and
// other text formats become literal blocks, svg and png become raw HTML.
func EmbedDiagram(diagram pyreverse.Diagram) doctree.Node {
	switch diagram.Format {
	case formatSVG:
		return doctree.NewRaw(types.FormatHTML, string(diagram.Content))
	case formatPNG:
		encoded := base64.StdEncoding.EncodeToString(diagram.Content)
		return doctree.NewRaw(types.FormatHTML, fmt.Sprintf(imageTagFormat, html.EscapeString(diagram.Kind), diagram.Format, encoded))
	case formatMermaid:
		return doctree.NewLiteral(string(diagram.Content), languageMermaid)
	case formatPlantUML:
		return doctree.NewLiteral(string(diagram.Content), languagePlantUML)
	case formatDot:
		return doctree.NewLiteral(string(diagram.Content), formatDot)
	default:
		return doctree.NewLiteral(string(diagram.Content), diagram.Format)
	}
}

func missingDiagramNode(name string) doctree.Node {
	return doctree.NewParagraph(fmt.Sprintf(missingDiagramFormat, name))
}
