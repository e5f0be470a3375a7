package doctree

// Replace returns a copy of document in which every placeholder whose ID is a
// key of replacements is substituted by the mapped nodes. Placeholders without
// a replacement are kept. The input document is not modified.
func Replace(document *Document, replacements map[string][]Node) *Document {
	if document == nil {
		return nil
	}
	return &Document{
		Name:     document.Name,
		Title:    document.Title,
		Children: replaceNodes(document.Children, replacements),
	}
}

func replaceNodes(nodes []Node, replacements map[string][]Node) []Node {
	if nodes == nil {
		return nil
	}
	result := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind == KindPlaceholder && node.Placeholder != nil {
			if replacement, found := replacements[node.Placeholder.ID]; found {
				result = append(result, cloneNodes(replacement)...)
				continue
			}
		}
		copied := cloneNode(node)
		copied.Children = replaceNodes(node.Children, replacements)
		result = append(result, copied)
	}
	return result
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	result := make([]Node, len(nodes))
	for index, node := range nodes {
		result[index] = cloneNode(node)
	}
	return result
}

func cloneNode(node Node) Node {
	copied := node
	if node.Headers != nil {
		copied.Headers = append([]string(nil), node.Headers...)
	}
	if node.Rows != nil {
		copied.Rows = make([][]string, len(node.Rows))
		for index, row := range node.Rows {
			copied.Rows[index] = append([]string(nil), row...)
		}
	}
	if node.Placeholder != nil {
		placeholder := *node.Placeholder
		placeholder.Options = make(map[string]string, len(node.Placeholder.Options))
		for key, value := range node.Placeholder.Options {
			placeholder.Options[key] = value
		}
		copied.Placeholder = &placeholder
	}
	copied.Children = cloneNodes(node.Children)
	return copied
}

// Walk visits every node depth-first in document order. Returning false from
// visit skips the node's children.
func Walk(document *Document, visit func(Node) bool) {
	if document == nil {
		return
	}
	walkNodes(document.Children, visit)
}

func walkNodes(nodes []Node, visit func(Node) bool) {
	for _, node := range nodes {
		if visit(node) {
			walkNodes(node.Children, visit)
		}
	}
}

// Placeholders lists the placeholders of document in order. When directives
// are given only placeholders created by those directives are returned.
func Placeholders(document *Document, directives ...string) []Placeholder {
	wanted := make(map[string]struct{}, len(directives))
	for _, directive := range directives {
		wanted[directive] = struct{}{}
	}
	var placeholders []Placeholder
	Walk(document, func(node Node) bool {
		if node.Kind != KindPlaceholder || node.Placeholder == nil {
			return true
		}
		if _, selected := wanted[node.Placeholder.Directive]; len(wanted) == 0 || selected {
			placeholders = append(placeholders, *node.Placeholder)
		}
		return true
	})
	return placeholders
}
