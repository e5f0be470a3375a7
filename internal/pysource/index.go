// Package pysource indexes the classes declared in a Python source tree so
// that bare class names can be resolved to the dotted path the diagram tool
// expects.
package pysource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrClassNotFound indicates that no indexed class matches a name.
	ErrClassNotFound = errors.New("pysource: class not found")
	// ErrAmbiguousClass indicates that several indexed classes match a name.
	ErrAmbiguousClass = errors.New("pysource: ambiguous class name")
)

const (
	pythonFileExtension     = ".py"
	packageInitFileName     = "__init__.py"
	packageInitModuleName   = "__init__"
	qualifiedNameSeparator  = "."
	ambiguousClassFormat    = "%w: %s matches %s"
	unresolvedClassFormat   = "%w: %s"
	classIndexFailureFormat = "index python classes in %s: %w"
)

// ClassIndex holds the qualified names of every class found under a root.
type ClassIndex struct {
	qualifiedNames []string
}

// NewClassIndex parses the Python files under root. When root is a package
// directory its name becomes the first segment of every qualified name. When
// root is a single file its module name is the file stem.
func NewClassIndex(root string) (*ClassIndex, error) {
	rootInfo, statError := os.Stat(root)
	if statError != nil {
		return nil, fmt.Errorf(classIndexFailureFormat, root, statError)
	}
	walkRoot := root
	modulePrefix := ""
	if !rootInfo.IsDir() {
		walkRoot = filepath.Dir(root)
	} else if _, initError := os.Stat(filepath.Join(root, packageInitFileName)); initError == nil {
		modulePrefix = filepath.Base(filepath.Clean(root))
	}
	names, collectError := collectClassNames(root, func(filePath string) string {
		return moduleName(walkRoot, modulePrefix, filePath)
	})
	if collectError != nil {
		return nil, fmt.Errorf(classIndexFailureFormat, root, collectError)
	}
	return NewClassIndexFromNames(names), nil
}

// NewClassIndexFromNames builds an index over already qualified class names.
func NewClassIndexFromNames(qualifiedNames []string) *ClassIndex {
	unique := map[string]struct{}{}
	for _, name := range qualifiedNames {
		trimmed := strings.TrimSpace(name)
		if trimmed != "" {
			unique[trimmed] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(unique))
	for name := range unique {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	return &ClassIndex{qualifiedNames: sorted}
}

// Names returns the indexed qualified names in lexical order.
func (index *ClassIndex) Names() []string {
	if index == nil {
		return nil
	}
	return append([]string(nil), index.qualifiedNames...)
}

// Resolve returns the qualified name for name. An exact match wins; otherwise
// the single class whose qualified name ends with name is returned.
func (index *ClassIndex) Resolve(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if index == nil || trimmed == "" {
		return "", fmt.Errorf(unresolvedClassFormat, ErrClassNotFound, name)
	}
	suffix := qualifiedNameSeparator + trimmed
	var candidates []string
	for _, qualifiedName := range index.qualifiedNames {
		if qualifiedName == trimmed {
			return qualifiedName, nil
		}
		if strings.HasSuffix(qualifiedName, suffix) {
			candidates = append(candidates, qualifiedName)
		}
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf(unresolvedClassFormat, ErrClassNotFound, trimmed)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf(ambiguousClassFormat, ErrAmbiguousClass, trimmed, strings.Join(candidates, ", "))
	}
}

func moduleName(root string, prefix string, filePath string) string {
	relative, relativeError := filepath.Rel(root, filePath)
	if relativeError != nil {
		relative = filePath
	}
	withoutExtension := strings.TrimSuffix(relative, filepath.Ext(relative))
	normalized := strings.ReplaceAll(withoutExtension, string(filepath.Separator), qualifiedNameSeparator)
	normalized = strings.TrimSuffix(normalized, packageInitModuleName)
	normalized = strings.Trim(normalized, qualifiedNameSeparator)
	if prefix == "" {
		return normalized
	}
	if normalized == "" {
		return prefix
	}
	return prefix + qualifiedNameSeparator + normalized
}

func joinQualifiedName(moduleName string, classNames []string) string {
	className := strings.Join(classNames, qualifiedNameSeparator)
	if moduleName == "" {
		return className
	}
	return moduleName + qualifiedNameSeparator + className
}
