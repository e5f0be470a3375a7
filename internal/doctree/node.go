// Package doctree holds the in-memory document tree produced by parsing a
// source document, and the placeholder replacement applied before writing.
package doctree

import (
	"github.com/google/uuid"
)

// Kind identifies the type of a Node.
type Kind string

// Node kinds.
const (
	KindSection     Kind = "section"
	KindParagraph   Kind = "paragraph"
	KindLiteral     Kind = "literal"
	KindTable       Kind = "table"
	KindPlaceholder Kind = "placeholder"
	KindRaw         Kind = "raw"
	KindContainer   Kind = "container"
)

// Node is one element of a document tree. Which fields apply depends on Kind:
// sections use Title and Level, paragraphs use Text, literal blocks use Text
// and Language, raw nodes use Text and Language as the target format, tables
// use Title, Headers and Rows, containers use Title and Children.
type Node struct {
	Kind        Kind         `json:"kind"`
	Title       string       `json:"title,omitempty"`
	Level       int          `json:"level,omitempty"`
	Text        string       `json:"text,omitempty"`
	Language    string       `json:"language,omitempty"`
	Headers     []string     `json:"headers,omitempty"`
	Rows        [][]string   `json:"rows,omitempty"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
	Children    []Node       `json:"children,omitempty"`
}

// Placeholder marks the position of a directive whose content is produced later.
type Placeholder struct {
	ID        string            `json:"id"`
	Directive string            `json:"directive"`
	Argument  string            `json:"argument,omitempty"`
	Title     string            `json:"title,omitempty"`
	Options   map[string]string `json:"options,omitempty"`
	Line      int               `json:"line"`
}

// Document is a parsed source document.
type Document struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Children []Node `json:"children"`
}

// NewSection returns a section heading node.
func NewSection(title string, level int) Node {
	return Node{Kind: KindSection, Title: title, Level: level}
}

// NewParagraph returns a paragraph node.
func NewParagraph(text string) Node {
	return Node{Kind: KindParagraph, Text: text}
}

// NewLiteral returns a literal block node.
func NewLiteral(text string, language string) Node {
	return Node{Kind: KindLiteral, Text: text, Language: language}
}

// NewRaw returns a node whose text is passed through unchanged to writers of format.
func NewRaw(format string, text string) Node {
	return Node{Kind: KindRaw, Language: format, Text: text}
}

// NewTable returns a table node. Rows are copied.
func NewTable(title string, headers []string, rows [][]string) Node {
	copiedRows := make([][]string, len(rows))
	for index, row := range rows {
		copiedRows[index] = append([]string(nil), row...)
	}
	return Node{Kind: KindTable, Title: title, Headers: append([]string(nil), headers...), Rows: copiedRows}
}

// NewContainer groups nodes under an optional caption.
func NewContainer(title string, children ...Node) Node {
	return Node{Kind: KindContainer, Title: title, Children: children}
}

// NewPlaceholder returns a placeholder node for directive with a fresh identity.
func NewPlaceholder(directive Directive, title string) Node {
	options := make(map[string]string, len(directive.Options))
	for key, value := range directive.Options {
		options[key] = value
	}
	return Node{
		Kind: KindPlaceholder,
		Placeholder: &Placeholder{
			ID:        uuid.NewString(),
			Directive: directive.Name,
			Argument:  directive.Argument,
			Title:     title,
			Options:   options,
			Line:      directive.Line,
		},
	}
}
