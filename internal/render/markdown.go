package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/types"
)

const (
	headingMarker          = "#"
	codeFenceMarker        = "`"
	minimumCodeFence       = 3
	tableSeparatorCell     = "---"
	tableCellSeparator     = " | "
	placeholderComment     = "<!-- unresolved %s -->"
	escapedPipe            = `\|`
	tableCaptionFormat     = "**%s**"
	markdownNewline        = "\n"
	markdownBlockSeparator = "\n\n"
)

// MarkdownWriter renders documents as CommonMark with pipe tables.
type MarkdownWriter struct{}

// FileExtension returns the extension of written files.
func (MarkdownWriter) FileExtension() string {
	return MarkdownFileExtension
}

// Write renders document to output.
func (writer MarkdownWriter) Write(output io.Writer, document *doctree.Document) error {
	buffered := bufio.NewWriter(output)
	if _, writeError := buffered.WriteString(writer.Render(document)); writeError != nil {
		return fmt.Errorf("write markdown for %s: %w", document.Name, writeError)
	}
	return buffered.Flush()
}

// Render returns document as Markdown text.
func (MarkdownWriter) Render(document *doctree.Document) string {
	blocks := markdownBlocks(document.Children)
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, markdownBlockSeparator) + markdownNewline
}

func markdownBlocks(nodes []doctree.Node) []string {
	var blocks []string
	for _, node := range nodes {
		switch node.Kind {
		case doctree.KindSection:
			level := node.Level
			if level < 1 {
				level = 1
			}
			if level > maximumHeadingLevel {
				level = maximumHeadingLevel
			}
			blocks = append(blocks, strings.Repeat(headingMarker, level)+" "+node.Title)
		case doctree.KindParagraph:
			blocks = append(blocks, node.Text)
		case doctree.KindLiteral:
			fence := codeFenceFor(node.Text)
			blocks = append(blocks, fence+node.Language+markdownNewline+node.Text+markdownNewline+fence)
		case doctree.KindTable:
			blocks = append(blocks, markdownTable(node))
		case doctree.KindRaw:
			if node.Language == types.FormatHTML || node.Language == types.FormatMarkdown {
				blocks = append(blocks, strings.TrimRight(node.Text, markdownNewline))
			}
		case doctree.KindContainer:
			if node.Title != "" {
				blocks = append(blocks, node.Title)
			}
			blocks = append(blocks, markdownBlocks(node.Children)...)
		case doctree.KindPlaceholder:
			if node.Placeholder != nil {
				blocks = append(blocks, fmt.Sprintf(placeholderComment, node.Placeholder.Directive))
			}
		}
	}
	return blocks
}

// codeFenceFor returns a backtick fence longer than any backtick run in text.
func codeFenceFor(text string) string {
	longestRun := 0
	currentRun := 0
	for _, character := range text {
		if string(character) == codeFenceMarker {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
			continue
		}
		currentRun = 0
	}
	fenceLength := minimumCodeFence
	if longestRun >= fenceLength {
		fenceLength = longestRun + 1
	}
	return strings.Repeat(codeFenceMarker, fenceLength)
}

func markdownTable(node doctree.Node) string {
	var builder strings.Builder
	if node.Title != "" {
		builder.WriteString(fmt.Sprintf(tableCaptionFormat, node.Title))
		builder.WriteString(markdownBlockSeparator)
	}
	columnCount := len(node.Headers)
	for _, row := range node.Rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
	}
	if columnCount == 0 {
		return strings.TrimRight(builder.String(), markdownNewline)
	}
	builder.WriteString(markdownRow(padCells(node.Headers, columnCount)))
	separators := make([]string, columnCount)
	for index := range separators {
		separators[index] = tableSeparatorCell
	}
	builder.WriteString(markdownNewline)
	builder.WriteString(markdownRow(separators))
	for _, row := range node.Rows {
		builder.WriteString(markdownNewline)
		builder.WriteString(markdownRow(padCells(row, columnCount)))
	}
	return builder.String()
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for index, cell := range cells {
		flattened := strings.ReplaceAll(strings.TrimSpace(cell), markdownNewline, " ")
		escaped[index] = strings.ReplaceAll(flattened, "|", escapedPipe)
	}
	return "| " + strings.Join(escaped, tableCellSeparator) + " |"
}

func padCells(cells []string, width int) []string {
	padded := make([]string, width)
	copy(padded, cells)
	return padded
}
