package doctree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestReplaceIsPure(t *testing.T) {
	first := NewPlaceholder(Directive{Name: "message-list", Line: 3}, "Lint")
	second := NewPlaceholder(Directive{Name: "package-diagram", Line: 5}, "")
	original := &Document{
		Name:     "index",
		Title:    "Index",
		Children: []Node{NewSection("Index", 1), first, NewContainer("wrapped", second)},
	}
	snapshot := Replace(original, nil)

	table := NewTable("Lint", []string{"path"}, [][]string{{"bzr.py"}})
	replaced := Replace(original, map[string][]Node{
		first.Placeholder.ID:  {table},
		second.Placeholder.ID: {NewParagraph("diagram"), NewLiteral("digraph {}", "dot")},
	})

	if diff := cmp.Diff(snapshot, original); diff != "" {
		t.Fatalf("input document changed (-before +after):\n%s", diff)
	}
	require.Len(t, replaced.Children, 3)
	require.Equal(t, KindTable, replaced.Children[1].Kind)
	require.Equal(t, [][]string{{"bzr.py"}}, replaced.Children[1].Rows)
	container := replaced.Children[2]
	require.Equal(t, KindContainer, container.Kind)
	require.Len(t, container.Children, 2)
	require.Equal(t, "digraph {}", container.Children[1].Text)
	require.Empty(t, Placeholders(replaced))

	replaced.Children[1].Rows[0][0] = "changed"
	require.Equal(t, "bzr.py", table.Rows[0][0])
}

func TestReplaceKeepsUnmappedPlaceholders(t *testing.T) {
	kept := NewPlaceholder(Directive{Name: "class-diagram", Argument: "Widget"}, "")
	document := &Document{Name: "api", Children: []Node{kept}}
	replaced := Replace(document, map[string][]Node{"unknown": {NewParagraph("x")}})
	require.Len(t, Placeholders(replaced, "class-diagram"), 1)
	require.Nil(t, Replace(nil, nil))
}

func TestPlaceholdersFiltersByDirective(t *testing.T) {
	document := &Document{Children: []Node{
		NewPlaceholder(Directive{Name: "message-list"}, ""),
		NewContainer("", NewPlaceholder(Directive{Name: "class-diagram"}, "")),
		NewPlaceholder(Directive{Name: "package-diagram"}, ""),
	}}
	require.Len(t, Placeholders(document), 3)
	diagrams := Placeholders(document, "class-diagram", "package-diagram")
	require.Len(t, diagrams, 2)
	require.Equal(t, "class-diagram", diagrams[0].Directive)
}

func TestPlaceholderOptionsAreCopied(t *testing.T) {
	directive := Directive{Name: "class-diagram", Options: map[string]string{"builtins": "yes"}}
	node := NewPlaceholder(directive, "")
	directive.Options["builtins"] = "no"
	require.Equal(t, map[string]string{"builtins": "yes"}, node.Placeholder.Options)
}
