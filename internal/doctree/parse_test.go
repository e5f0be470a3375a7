package doctree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `=========
Reference
=========

Static analysis
---------------

The messages below come from
the diagnostic tool.

.. message-list:: Lint results

.. class-diagram:: Widget
   :ancestor_depth: 2
   :classes_only:

Example::

    run()
    stop()

.. note:: unknown directive
   body line

.. a comment line
   continued

Closing paragraph.
`

func placeholderDirectives() Directives {
	handler := func(directive Directive) ([]Node, error) {
		return []Node{NewPlaceholder(directive, directive.Argument)}, nil
	}
	return Directives{"message-list": handler, "class-diagram": handler}
}

func TestParseSampleDocument(t *testing.T) {
	document, err := Parse("reference", sampleDocument, placeholderDirectives())
	require.NoError(t, err)
	require.Equal(t, "Reference", document.Title)

	kinds := make([]Kind, 0, len(document.Children))
	for _, node := range document.Children {
		kinds = append(kinds, node.Kind)
	}
	expectedKinds := []Kind{
		KindSection, KindSection, KindParagraph, KindPlaceholder, KindPlaceholder,
		KindParagraph, KindLiteral, KindLiteral, KindParagraph,
	}
	if diff := cmp.Diff(expectedKinds, kinds); diff != "" {
		t.Fatalf("unexpected node kinds (-want +got):\n%s", diff)
	}

	require.Equal(t, 1, document.Children[0].Level)
	require.Equal(t, 2, document.Children[1].Level)
	require.Equal(t, "Static analysis", document.Children[1].Title)
	require.Equal(t, "The messages below come from the diagnostic tool.", document.Children[2].Text)

	messageList := document.Children[3].Placeholder
	require.NotNil(t, messageList)
	require.Equal(t, "message-list", messageList.Directive)
	require.Equal(t, "Lint results", messageList.Argument)
	require.Equal(t, 11, messageList.Line)

	classDiagram := document.Children[4].Placeholder
	require.NotNil(t, classDiagram)
	require.Equal(t, "Widget", classDiagram.Argument)
	require.Equal(t, map[string]string{"ancestor_depth": "2", "classes_only": ""}, classDiagram.Options)
	require.NotEqual(t, messageList.ID, classDiagram.ID)

	require.Equal(t, "Example:", document.Children[5].Text)
	require.Equal(t, "run()\nstop()", document.Children[6].Text)
	require.Equal(t, "rst", document.Children[7].Language)
	require.Equal(t, ".. note:: unknown directive\n   body line", document.Children[7].Text)
	require.Equal(t, "Closing paragraph.", document.Children[8].Text)
}

func TestParseDirectiveErrorIncludesLocation(t *testing.T) {
	failing := Directives{"class-diagram": func(directive Directive) ([]Node, error) {
		return nil, errors.New("class name required")
	}}
	_, err := Parse("guide/api", "Intro\n\n.. class-diagram::\n", failing)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDirective))
	require.Contains(t, err.Error(), "guide/api:3")
	require.Contains(t, err.Error(), "class name required")
}

func TestParseDirectiveContent(t *testing.T) {
	var captured Directive
	registry := Directives{"package-diagram": func(directive Directive) ([]Node, error) {
		captured = directive
		return nil, nil
	}}
	_, err := Parse("doc", ".. package-diagram::\n   :format: svg\n\n   caption text\n\nAfter.\n", registry)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"format": "svg"}, captured.Options)
	require.Equal(t, []string{"caption text"}, captured.Content)
}

func TestParseEmptySource(t *testing.T) {
	document, err := Parse("empty", "", nil)
	require.NoError(t, err)
	require.Empty(t, document.Children)
	require.Empty(t, document.Title)
}
