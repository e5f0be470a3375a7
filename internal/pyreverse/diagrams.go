package pyreverse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Diagram kinds written by pyreverse.
const (
	KindClasses  = "classes"
	KindPackages = "packages"
)

const diagramFileNameFormat = "%s_%s.%s"

// Diagram is one file produced by a pyreverse run.
type Diagram struct {
	Kind    string
	Format  string
	Path    string
	Content []byte
}

// DiagramFileName returns the name pyreverse gives to a diagram of kind for project in format.
// pyreverse omits the project suffix when no project name is supplied.
func DiagramFileName(kind string, projectName string, format string) string {
	if projectName == "" {
		return kind + "." + format
	}
	return fmt.Sprintf(diagramFileNameFormat, kind, projectName, format)
}

// CollectDiagrams reads the diagram files pyreverse wrote into directory.
// Missing files are skipped; a diagram kind that was not produced is simply absent.
func CollectDiagrams(directory string, format string, projectName string) ([]Diagram, error) {
	var diagrams []Diagram
	for _, kind := range []string{KindClasses, KindPackages} {
		diagramPath := filepath.Join(directory, DiagramFileName(kind, projectName, format))
		// #nosec G304
		content, readError := os.ReadFile(diagramPath)
		if readError != nil {
			if os.IsNotExist(readError) {
				continue
			}
			return nil, fmt.Errorf("read diagram %s: %w", diagramPath, readError)
		}
		diagrams = append(diagrams, Diagram{Kind: kind, Format: format, Path: diagramPath, Content: content})
	}
	sort.SliceStable(diagrams, func(left, right int) bool {
		return diagrams[left].Kind < diagrams[right].Kind
	})
	return diagrams, nil
}

// FindDiagram returns the first diagram of kind.
func FindDiagram(diagrams []Diagram, kind string) (Diagram, bool) {
	for _, diagram := range diagrams {
		if diagram.Kind == kind {
			return diagram, true
		}
	}
	return Diagram{}, false
}
