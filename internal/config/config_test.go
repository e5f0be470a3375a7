package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/lintdoc/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadIgnoreFilePatternsSections verifies that lint and document patterns are separated.
func TestLoadIgnoreFilePatternsSections(testingHandle *testing.T) {
	ignoreFilePath := filepath.Join(testingHandle.TempDir(), utils.LintIgnoreFileName)
	writeTestFile(testingHandle, ignoreFilePath, "# generated code\nmigrations\n\n[documents]\ndrafts/\n*.wip.rst\n[LINT]\nvendor\nmigrations\n")

	patterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreFilePatterns failed: %v", loadError)
	}
	if !reflect.DeepEqual(patterns.Lint, []string{"migrations", "vendor"}) {
		testingHandle.Fatalf("unexpected lint patterns: %v", patterns.Lint)
	}
	if !reflect.DeepEqual(patterns.Documents, []string{"drafts/", "*.wip.rst"}) {
		testingHandle.Fatalf("unexpected document patterns: %v", patterns.Documents)
	}
}

// TestLoadIgnoreFilePatternsMissingFile verifies that an absent file is not an error.
func TestLoadIgnoreFilePatternsMissingFile(testingHandle *testing.T) {
	patterns, loadError := LoadIgnoreFilePatterns(filepath.Join(testingHandle.TempDir(), "absent"))
	if loadError != nil {
		testingHandle.Fatalf("unexpected error: %v", loadError)
	}
	if len(patterns.Lint) != 0 || len(patterns.Documents) != 0 {
		testingHandle.Fatalf("expected empty patterns, got %+v", patterns)
	}
}

// TestLoadSourceIgnorePatternsExcludesOutput verifies that the build directory is excluded from documents.
func TestLoadSourceIgnorePatternsExcludesOutput(testingHandle *testing.T) {
	sourceDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(sourceDirectory, utils.LintIgnoreFileName), "[documents]\ndrafts/\n")

	patterns, loadError := LoadSourceIgnorePatterns(sourceDirectory, filepath.Join(sourceDirectory, "_build"))
	if loadError != nil {
		testingHandle.Fatalf("LoadSourceIgnorePatterns failed: %v", loadError)
	}
	expected := []string{"drafts/", ".git/", "_build/"}
	if !reflect.DeepEqual(patterns.Documents, expected) {
		testingHandle.Fatalf("unexpected document patterns: got %v want %v", patterns.Documents, expected)
	}

	outside, outsideError := LoadSourceIgnorePatterns(sourceDirectory, filepath.Join(filepath.Dir(sourceDirectory), "site"))
	if outsideError != nil {
		testingHandle.Fatalf("LoadSourceIgnorePatterns failed: %v", outsideError)
	}
	if !reflect.DeepEqual(outside.Documents, []string{"drafts/", ".git/"}) {
		testingHandle.Fatalf("output outside the source tree must not be excluded: %v", outside.Documents)
	}
}
