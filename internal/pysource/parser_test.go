//go:build cgo

package pysource

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePythonFile(testingHandle *testing.T, path string, content string) {
	testingHandle.Helper()
	if mkdirError := os.MkdirAll(filepath.Dir(path), 0o755); mkdirError != nil {
		testingHandle.Fatalf("mkdir: %v", mkdirError)
	}
	if writeError := os.WriteFile(path, []byte(content), 0o600); writeError != nil {
		testingHandle.Fatalf("write: %v", writeError)
	}
}

func TestNewClassIndexPackage(testingHandle *testing.T) {
	packageDirectory := filepath.Join(testingHandle.TempDir(), "shop")
	writePythonFile(testingHandle, filepath.Join(packageDirectory, "__init__.py"), "class Registry:\n    pass\n")
	writePythonFile(testingHandle, filepath.Join(packageDirectory, "models.py"), "class Widget:\n    class Meta:\n        ordering = []\n\n    def price(self):\n        return 1\n")
	writePythonFile(testingHandle, filepath.Join(packageDirectory, "views", "render.py"), "def helper():\n    class Local:\n        pass\n")
	writePythonFile(testingHandle, filepath.Join(packageDirectory, ".cache", "hidden.py"), "class Hidden:\n    pass\n")
	writePythonFile(testingHandle, filepath.Join(packageDirectory, "notes.txt"), "class NotPython:\n")

	index, indexError := NewClassIndex(packageDirectory)
	if indexError != nil {
		testingHandle.Fatalf("index: %v", indexError)
	}
	expected := []string{"shop.Registry", "shop.models.Widget", "shop.models.Widget.Meta", "shop.views.render.Local"}
	if !reflect.DeepEqual(index.Names(), expected) {
		testingHandle.Fatalf("expected %v, got %v", expected, index.Names())
	}
	resolved, resolveError := index.Resolve("Meta")
	if resolveError != nil || resolved != "shop.models.Widget.Meta" {
		testingHandle.Fatalf("unexpected resolution %q, %v", resolved, resolveError)
	}
}

func TestNewClassIndexSingleFile(testingHandle *testing.T) {
	modulePath := filepath.Join(testingHandle.TempDir(), "tool.py")
	writePythonFile(testingHandle, modulePath, "class Command(object):\n    pass\n")
	index, indexError := NewClassIndex(modulePath)
	if indexError != nil {
		testingHandle.Fatalf("index: %v", indexError)
	}
	if !reflect.DeepEqual(index.Names(), []string{"tool.Command"}) {
		testingHandle.Fatalf("unexpected names %v", index.Names())
	}
}

func TestNewClassIndexMissingRoot(testingHandle *testing.T) {
	if _, indexError := NewClassIndex(filepath.Join(testingHandle.TempDir(), "absent")); indexError == nil {
		testingHandle.Fatalf("expected an error for a missing root")
	}
}
