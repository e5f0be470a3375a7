//go:build cgo

package pysource

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	python "github.com/smacker/go-tree-sitter/python"
)

const (
	pythonClassNodeType = "class_definition"
	pythonNameField     = "name"
)

// Available reports whether class indexing is compiled in.
func Available() bool {
	return true
}

func collectClassNames(root string, moduleOf func(string) string) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	var names []string
	walkError := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != pythonFileExtension {
			return nil
		}
		content, readError := os.ReadFile(path) // #nosec G304 -- path comes from walking the analysis target
		if readError != nil {
			return readError
		}
		tree := parser.Parse(nil, content)
		if tree == nil {
			return nil
		}
		defer tree.Close()
		collectClasses(tree.RootNode(), content, moduleOf(path), nil, &names)
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}
	return names, nil
}

func collectClasses(node *sitter.Node, content []byte, moduleName string, enclosing []string, names *[]string) {
	if node == nil {
		return
	}
	if node.Type() == pythonClassNodeType {
		if nameNode := node.ChildByFieldName(pythonNameField); nameNode != nil {
			className := strings.TrimSpace(string(content[nameNode.StartByte():nameNode.EndByte()]))
			enclosing = append(append([]string(nil), enclosing...), className)
			*names = append(*names, joinQualifiedName(moduleName, enclosing))
		}
	}
	for index := 0; index < int(node.ChildCount()); index++ {
		collectClasses(node.Child(index), content, moduleName, enclosing, names)
	}
}
