// Package render writes document trees as HTML or Markdown and previews them in a terminal.
package render

import (
	"fmt"
	"io"

	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/types"
)

// Output file extensions per document format.
const (
	HTMLFileExtension     = ".html"
	MarkdownFileExtension = ".md"
)

const unsupportedFormatMessage = "unsupported document format %q"

// Writer serialises a resolved document.
type Writer interface {
	Write(output io.Writer, document *doctree.Document) error
	FileExtension() string
}

// NewWriter returns the writer for format.
func NewWriter(format string) (Writer, error) {
	switch format {
	case types.FormatHTML, "":
		return HTMLWriter{}, nil
	case types.FormatMarkdown:
		return MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf(unsupportedFormatMessage, format)
	}
}
