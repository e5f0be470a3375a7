package pyreverse

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/lintdoc/internal/runner"
)

// TestBuildCommandTokenOrder verifies the fixed flag order for representative option sets.
func TestBuildCommandTokenOrder(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		options  Options
		expected runner.Invocation
	}{
		{
			name:     "minimal_target_only",
			options:  Options{Target: "pkg"},
			expected: runner.Invocation{"pyreverse", "-mn", "pkg"},
		},
		{
			name: "every_option_set",
			options: Options{
				OutputFormat:           "svg",
				OutputName:             "pkg.module.Widget",
				AncestorDepth:          Levels(2),
				AssociatedClassesDepth: Levels(3),
				ModuleNames:            true,
				AttributeFilter:        FilterPublicOnly,
				ClassesOnly:            true,
				ShowBuiltins:           true,
				Target:                 "pkg",
				ProjectName:            "demo",
			},
			expected: runner.Invocation{"pyreverse", "-osvg", "-cpkg.module.Widget", "-a2", "-s3", "-my", "-fPUB_ONLY", "-k", "-b", "pkg", "demo"},
		},
		{
			name: "all_depths",
			options: Options{
				AncestorDepth:          AllLevels(),
				AssociatedClassesDepth: AllLevels(),
				AttributeFilter:        FilterAll,
				Target:                 "src/app",
			},
			expected: runner.Invocation{"pyreverse", "-A", "-S", "-mn", "-fALL", "src/app"},
		},
		{
			name: "zero_depths_are_explicit",
			options: Options{
				AncestorDepth:          Levels(0),
				AssociatedClassesDepth: Levels(0),
				Target:                 "pkg",
			},
			expected: runner.Invocation{"pyreverse", "-a0", "-s0", "-mn", "pkg"},
		},
		{
			name: "unrecognized_filter_dropped",
			options: Options{
				AttributeFilter: "PRIVATE",
				Target:          "pkg",
			},
			expected: runner.Invocation{"pyreverse", "-mn", "pkg"},
		},
		{
			name: "lowercase_filter_dropped",
			options: Options{
				AttributeFilter: "special",
				Target:          "pkg",
			},
			expected: runner.Invocation{"pyreverse", "-mn", "pkg"},
		},
		{
			name: "custom_executable",
			options: Options{
				Executable:   "/opt/venv/bin/pyreverse",
				OutputFormat: "dot",
				Target:       "pkg",
				ProjectName:  "demo",
			},
			expected: runner.Invocation{"/opt/venv/bin/pyreverse", "-odot", "-mn", "pkg", "demo"},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			invocation := BuildCommand(testCase.options)
			if !reflect.DeepEqual(invocation, testCase.expected) {
				testingHandle.Fatalf("unexpected invocation: got %v want %v", invocation, testCase.expected)
			}
		})
	}
}

// TestBuildCommandDoesNotModifyOptions verifies that repeated calls yield the same vector.
func TestBuildCommandDoesNotModifyOptions(testingHandle *testing.T) {
	options := Options{OutputFormat: "dot", AncestorDepth: Levels(1), Target: "pkg", ProjectName: "demo"}
	snapshot := options
	first := BuildCommand(options)
	second := BuildCommand(options)
	if !reflect.DeepEqual(first, second) {
		testingHandle.Fatalf("expected identical invocations, got %v and %v", first, second)
	}
	if !reflect.DeepEqual(options, snapshot) {
		testingHandle.Fatalf("options changed: got %+v want %+v", options, snapshot)
	}
}

// TestParseDepth verifies textual depth interpretation.
func TestParseDepth(testingHandle *testing.T) {
	testCases := []struct {
		input         string
		expected      Depth
		expectedError bool
	}{
		{input: "", expected: Depth{}},
		{input: "ALL", expected: AllLevels()},
		{input: "all", expected: AllLevels()},
		{input: "0", expected: Levels(0)},
		{input: " 4 ", expected: Levels(4)},
		{input: "-1", expectedError: true},
		{input: "deep", expectedError: true},
	}
	for _, testCase := range testCases {
		depth, parseError := ParseDepth(testCase.input)
		if testCase.expectedError {
			if !errors.Is(parseError, ErrInvalidDepth) {
				testingHandle.Fatalf("ParseDepth(%q) expected ErrInvalidDepth, got %v", testCase.input, parseError)
			}
			continue
		}
		if parseError != nil {
			testingHandle.Fatalf("ParseDepth(%q) unexpected error: %v", testCase.input, parseError)
		}
		if depth != testCase.expected {
			testingHandle.Fatalf("ParseDepth(%q) = %+v, want %+v", testCase.input, depth, testCase.expected)
		}
	}
	if (Depth{}).IsSet() {
		testingHandle.Fatalf("zero Depth must be absent")
	}
	if levels, explicit := Levels(0).Value(); !explicit || levels != 0 {
		testingHandle.Fatalf("Levels(0) must be explicit")
	}
}

// TestCollectDiagrams verifies that produced files are read and missing kinds are skipped.
func TestCollectDiagrams(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	classesPath := filepath.Join(workingDirectory, "classes_demo.dot")
	if writeError := os.WriteFile(classesPath, []byte("digraph classes {}"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write diagram: %v", writeError)
	}

	diagrams, collectError := CollectDiagrams(workingDirectory, "dot", "demo")
	if collectError != nil {
		testingHandle.Fatalf("CollectDiagrams failed: %v", collectError)
	}
	if len(diagrams) != 1 {
		testingHandle.Fatalf("expected one diagram, got %d", len(diagrams))
	}
	classes, found := FindDiagram(diagrams, KindClasses)
	if !found || string(classes.Content) != "digraph classes {}" || classes.Path != classesPath {
		testingHandle.Fatalf("unexpected classes diagram: %+v", classes)
	}
	if _, found := FindDiagram(diagrams, KindPackages); found {
		testingHandle.Fatalf("packages diagram must be absent")
	}
	if name := DiagramFileName(KindPackages, "", "svg"); name != "packages.svg" {
		testingHandle.Fatalf("unexpected file name without project: %s", name)
	}
}
