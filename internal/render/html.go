package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/types"
)

const (
	maximumHeadingLevel   = 6
	languageClassPrefix   = "language-"
	containerClass        = "container"
	captionClass          = "caption"
	placeholderClass      = "unresolved"
	directiveAttribute    = "data-directive"
	characterSetAttribute = "charset"
	characterSetUTF8      = "utf-8"
)

var headingAtoms = [maximumHeadingLevel]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HTMLWriter renders documents as standalone HTML pages.
type HTMLWriter struct{}

// FileExtension returns the extension of written files.
func (HTMLWriter) FileExtension() string {
	return HTMLFileExtension
}

// Write renders document to output.
func (writer HTMLWriter) Write(output io.Writer, document *doctree.Document) error {
	root, buildError := writer.Build(document)
	if buildError != nil {
		return buildError
	}
	if renderError := html.Render(output, root); renderError != nil {
		return fmt.Errorf("render html for %s: %w", document.Name, renderError)
	}
	return nil
}

// Build converts document into an HTML node tree.
func (HTMLWriter) Build(document *doctree.Document) (*html.Node, error) {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	htmlElement := newElement(atom.Html)
	root.AppendChild(htmlElement)

	head := newElement(atom.Head)
	head.AppendChild(newElement(atom.Meta, html.Attribute{Key: characterSetAttribute, Val: characterSetUTF8}))
	title := newElement(atom.Title)
	title.AppendChild(newText(documentTitle(document)))
	head.AppendChild(title)
	htmlElement.AppendChild(head)

	body := newElement(atom.Body)
	htmlElement.AppendChild(body)
	if appendError := appendHTMLNodes(body, document.Children); appendError != nil {
		return nil, fmt.Errorf("build html for %s: %w", document.Name, appendError)
	}
	return root, nil
}

func appendHTMLNodes(parent *html.Node, nodes []doctree.Node) error {
	for _, node := range nodes {
		if appendError := appendHTMLNode(parent, node); appendError != nil {
			return appendError
		}
	}
	return nil
}

func appendHTMLNode(parent *html.Node, node doctree.Node) error {
	switch node.Kind {
	case doctree.KindSection:
		level := node.Level
		if level < 1 {
			level = 1
		}
		if level > maximumHeadingLevel {
			level = maximumHeadingLevel
		}
		heading := newElement(headingAtoms[level-1])
		heading.AppendChild(newText(node.Title))
		parent.AppendChild(heading)
	case doctree.KindParagraph:
		paragraph := newElement(atom.P)
		paragraph.AppendChild(newText(node.Text))
		parent.AppendChild(paragraph)
	case doctree.KindLiteral:
		code := newElement(atom.Code)
		if node.Language != "" {
			code.Attr = append(code.Attr, html.Attribute{Key: "class", Val: languageClassPrefix + node.Language})
		}
		code.AppendChild(newText(node.Text))
		preformatted := newElement(atom.Pre)
		preformatted.AppendChild(code)
		parent.AppendChild(preformatted)
	case doctree.KindTable:
		parent.AppendChild(buildTable(node))
	case doctree.KindRaw:
		if node.Language != types.FormatHTML {
			return nil
		}
		fragment, parseError := html.ParseFragment(strings.NewReader(node.Text), &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: atom.Body.String()})
		if parseError != nil {
			return fmt.Errorf("parse raw html: %w", parseError)
		}
		for _, fragmentNode := range fragment {
			parent.AppendChild(fragmentNode)
		}
	case doctree.KindContainer:
		container := newElement(atom.Div, html.Attribute{Key: "class", Val: containerClass})
		if node.Title != "" {
			caption := newElement(atom.P, html.Attribute{Key: "class", Val: captionClass})
			caption.AppendChild(newText(node.Title))
			container.AppendChild(caption)
		}
		if appendError := appendHTMLNodes(container, node.Children); appendError != nil {
			return appendError
		}
		parent.AppendChild(container)
	case doctree.KindPlaceholder:
		unresolved := newElement(atom.Div, html.Attribute{Key: "class", Val: placeholderClass})
		if node.Placeholder != nil {
			unresolved.Attr = append(unresolved.Attr, html.Attribute{Key: directiveAttribute, Val: node.Placeholder.Directive})
		}
		parent.AppendChild(unresolved)
	}
	return nil
}

func buildTable(node doctree.Node) *html.Node {
	table := newElement(atom.Table)
	if node.Title != "" {
		caption := newElement(atom.Caption)
		caption.AppendChild(newText(node.Title))
		table.AppendChild(caption)
	}
	if len(node.Headers) > 0 {
		headerRow := newElement(atom.Tr)
		for _, header := range node.Headers {
			cell := newElement(atom.Th)
			cell.AppendChild(newText(header))
			headerRow.AppendChild(cell)
		}
		tableHead := newElement(atom.Thead)
		tableHead.AppendChild(headerRow)
		table.AppendChild(tableHead)
	}
	tableBody := newElement(atom.Tbody)
	for _, row := range node.Rows {
		tableRow := newElement(atom.Tr)
		for _, value := range row {
			cell := newElement(atom.Td)
			cell.AppendChild(newText(value))
			tableRow.AppendChild(cell)
		}
		tableBody.AppendChild(tableRow)
	}
	table.AppendChild(tableBody)
	return table
}

func newElement(tag atom.Atom, attributes ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String(), Attr: attributes}
}

func newText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func documentTitle(document *doctree.Document) string {
	if document.Title != "" {
		return document.Title
	}
	return document.Name
}
