package pysource

import (
	"errors"
	"testing"
)

func TestResolve(testingHandle *testing.T) {
	index := NewClassIndexFromNames([]string{
		"shop.models.Widget",
		"shop.models.Widget.Meta",
		"shop.admin.Meta",
		"shop.views.Renderer",
		"shop.views.Renderer",
	})
	testCases := []struct {
		name          string
		className     string
		expectedName  string
		expectedError error
	}{
		{name: "exact", className: "shop.views.Renderer", expectedName: "shop.views.Renderer"},
		{name: "bare suffix", className: "Widget", expectedName: "shop.models.Widget"},
		{name: "dotted suffix", className: "models.Widget.Meta", expectedName: "shop.models.Widget.Meta"},
		{name: "ambiguous", className: "Meta", expectedError: ErrAmbiguousClass},
		{name: "missing", className: "Basket", expectedError: ErrClassNotFound},
		{name: "partial segment", className: "idget", expectedError: ErrClassNotFound},
		{name: "blank", className: "  ", expectedError: ErrClassNotFound},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			resolved, resolveError := index.Resolve(testCase.className)
			if testCase.expectedError != nil {
				if !errors.Is(resolveError, testCase.expectedError) {
					testingHandle.Fatalf("expected %v, got %v", testCase.expectedError, resolveError)
				}
				return
			}
			if resolveError != nil {
				testingHandle.Fatalf("unexpected error: %v", resolveError)
			}
			if resolved != testCase.expectedName {
				testingHandle.Fatalf("expected %s, got %s", testCase.expectedName, resolved)
			}
		})
	}
	if len(index.Names()) != 4 {
		testingHandle.Fatalf("expected duplicate names to collapse, got %v", index.Names())
	}
}

func TestNilIndexResolvesNothing(testingHandle *testing.T) {
	var index *ClassIndex
	if _, resolveError := index.Resolve("Widget"); !errors.Is(resolveError, ErrClassNotFound) {
		testingHandle.Fatalf("expected not found, got %v", resolveError)
	}
}

func TestModuleName(testingHandle *testing.T) {
	testCases := []struct {
		prefix   string
		relative string
		expected string
	}{
		{prefix: "", relative: "tool.py", expected: "tool"},
		{prefix: "shop", relative: "models.py", expected: "shop.models"},
		{prefix: "shop", relative: "__init__.py", expected: "shop"},
		{prefix: "shop", relative: "sub/__init__.py", expected: "shop.sub"},
		{prefix: "", relative: "sub/deep/mod.py", expected: "sub.deep.mod"},
	}
	root := testingHandle.TempDir()
	for _, testCase := range testCases {
		actual := moduleName(root, testCase.prefix, root+"/"+testCase.relative)
		if actual != testCase.expected {
			testingHandle.Fatalf("%s: expected %s, got %s", testCase.relative, testCase.expected, actual)
		}
	}
}
