package utils_test

import (
	"reflect"
	"testing"

	"github.com/temirov/lintdoc/internal/utils"
)

// TestParseBooleanLiteral verifies recognized spellings and the empty-value default.
func TestParseBooleanLiteral(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedValue  bool
		expectedParsed bool
	}{
		{name: "empty_means_true", input: "", expectedValue: true, expectedParsed: true},
		{name: "yes", input: " Yes ", expectedValue: true, expectedParsed: true},
		{name: "off", input: "off", expectedValue: false, expectedParsed: true},
		{name: "zero", input: "0", expectedValue: false, expectedParsed: true},
		{name: "unknown", input: "maybe", expectedValue: false, expectedParsed: false},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			value, parsed := utils.ParseBooleanLiteral(testCase.input)
			if value != testCase.expectedValue || parsed != testCase.expectedParsed {
				testingHandle.Fatalf("ParseBooleanLiteral(%q) = (%v, %v), want (%v, %v)", testCase.input, value, parsed, testCase.expectedValue, testCase.expectedParsed)
			}
		})
	}
}

// TestSplitCommaList verifies trimming and empty entry removal.
func TestSplitCommaList(testingHandle *testing.T) {
	entries := utils.SplitCommaList(" classes, ,similarities ,")
	expected := []string{"classes", "similarities"}
	if !reflect.DeepEqual(entries, expected) {
		testingHandle.Fatalf("unexpected entries: got %v want %v", entries, expected)
	}
	if utils.SplitCommaList("") != nil {
		testingHandle.Fatalf("expected nil for empty input")
	}
}

// TestJoinCommaListDeduplicates verifies that repeated entries are emitted once.
func TestJoinCommaListDeduplicates(testingHandle *testing.T) {
	joined := utils.JoinCommaList([]string{"build", "dist", "build"})
	if joined != "build,dist" {
		testingHandle.Fatalf("unexpected join result %q", joined)
	}
}

// TestMatchesAnyPattern verifies directory prefixes and glob matches.
func TestMatchesAnyPattern(testingHandle *testing.T) {
	patterns := []string{"_build/", "*.draft.rst", "api/generated.rst"}
	testCases := []struct {
		path     string
		expected bool
	}{
		{path: "_build", expected: true},
		{path: "_build/index.rst", expected: true},
		{path: "guide/intro.draft.rst", expected: true},
		{path: "api/generated.rst", expected: true},
		{path: "api/index.rst", expected: false},
		{path: "build/index.rst", expected: false},
	}
	for _, testCase := range testCases {
		if matched := utils.MatchesAnyPattern(testCase.path, patterns); matched != testCase.expected {
			testingHandle.Fatalf("MatchesAnyPattern(%q) = %v, want %v", testCase.path, matched, testCase.expected)
		}
	}
}

// TestRelativePathOrSelf verifies slash-separated relative paths.
func TestRelativePathOrSelf(testingHandle *testing.T) {
	if relative := utils.RelativePathOrSelf("/docs/guide/intro.rst", "/docs"); relative != "guide/intro.rst" {
		testingHandle.Fatalf("unexpected relative path %q", relative)
	}
	if relative := utils.RelativePathOrSelf("/docs", "/docs"); relative != "." {
		testingHandle.Fatalf("expected '.', got %q", relative)
	}
}
