// Package utils contains general helper functions used across lintdoc.
package utils

import (
	"path/filepath"
	"strings"
)

const commaSeparator = ","

var booleanLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// BooleanLiteralListing enumerates accepted boolean spellings for error messages.
const BooleanLiteralListing = "true, false, yes, no, on, off, 1, 0"

// ParseBooleanLiteral interprets a textual boolean. An empty value means true,
// matching flag-style options that are present without a value.
func ParseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	parsed, recognized := booleanLiterals[normalized]
	return parsed, recognized
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// SplitCommaList splits a comma-separated list, trimming entries and dropping empty ones.
func SplitCommaList(value string) []string {
	var entries []string
	for _, entry := range strings.Split(value, commaSeparator) {
		trimmed := strings.TrimSpace(entry)
		if trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}

// JoinCommaList joins entries with commas after deduplication.
func JoinCommaList(entries []string) string {
	return strings.Join(DeduplicatePatterns(entries), commaSeparator)
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	relativePath, relativeError := filepath.Rel(filepath.Clean(root), cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// MatchesAnyPattern reports whether a slash-separated relative path matches one of the glob patterns.
// Patterns ending with "/" match a directory prefix.
func MatchesAnyPattern(relativePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/") {
			directoryPrefix := strings.TrimSuffix(pattern, "/")
			if relativePath == directoryPrefix || strings.HasPrefix(relativePath, pattern) {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, relativePath); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(relativePath)); matched {
			return true
		}
	}
	return false
}
