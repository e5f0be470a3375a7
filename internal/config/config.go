// Package config loads lintdoc settings and ignore files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/lintdoc/internal/utils"
)

const (
	// lintSectionHeader identifies patterns passed to the diagnostic tool's ignore option.
	lintSectionHeader = "[lint]"
	// documentsSectionHeader identifies source documents the builder skips.
	documentsSectionHeader = "[documents]"
	commentPrefix          = "#"
)

// IgnorePatterns holds the two sections of an ignore file.
type IgnorePatterns struct {
	Lint      []string
	Documents []string
}

// LoadIgnoreFilePatterns reads an ignore file. Lines before any section header
// belong to the [lint] section. A missing file yields empty patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) (IgnorePatterns, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return IgnorePatterns{}, nil
		}
		return IgnorePatterns{}, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var patterns IgnorePatterns
	currentSectionHeader := lintSectionHeader
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		if strings.EqualFold(trimmedLine, documentsSectionHeader) {
			currentSectionHeader = documentsSectionHeader
			continue
		}
		if strings.EqualFold(trimmedLine, lintSectionHeader) {
			currentSectionHeader = lintSectionHeader
			continue
		}
		if currentSectionHeader == documentsSectionHeader {
			patterns.Documents = append(patterns.Documents, filepath.ToSlash(trimmedLine))
			continue
		}
		patterns.Lint = append(patterns.Lint, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return IgnorePatterns{}, scanError
	}
	patterns.Lint = utils.DeduplicatePatterns(patterns.Lint)
	patterns.Documents = utils.DeduplicatePatterns(patterns.Documents)
	return patterns, nil
}

// LoadSourceIgnorePatterns reads the ignore file of a documentation source directory.
// The build output directory and the Git directory are always excluded from documents.
func LoadSourceIgnorePatterns(sourceDirectory string, outputDirectory string) (IgnorePatterns, error) {
	ignoreFilePath := filepath.Join(sourceDirectory, utils.LintIgnoreFileName)
	patterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		return IgnorePatterns{}, fmt.Errorf("loading %s from %s: %w", utils.LintIgnoreFileName, sourceDirectory, loadError)
	}
	excluded := []string{utils.GitDirectoryName + "/"}
	if outputDirectory != "" {
		relativeOutput := utils.RelativePathOrSelf(outputDirectory, sourceDirectory)
		if relativeOutput != "." && !strings.HasPrefix(relativeOutput, "..") {
			excluded = append(excluded, relativeOutput+"/")
		}
	}
	patterns.Documents = utils.DeduplicatePatterns(append(patterns.Documents, excluded...))
	return patterns, nil
}
