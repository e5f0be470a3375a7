package build

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/lintdoc/internal/utils"
)

// SourceDocument is a document file found under the source directory.
type SourceDocument struct {
	// Name is the slash-separated path relative to the source directory without extension.
	Name string
	Path string
}

// DiscoverDocuments lists the source documents under sourceDirectory in name
// order. Hidden directories and paths matching ignorePatterns are skipped.
func DiscoverDocuments(sourceDirectory string, ignorePatterns []string) ([]SourceDocument, error) {
	var documents []SourceDocument
	walkError := filepath.WalkDir(sourceDirectory, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		relativePath := utils.RelativePathOrSelf(path, sourceDirectory)
		if entry.IsDir() {
			if path == sourceDirectory {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || utils.MatchesAnyPattern(relativePath, ignorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != utils.SourceDocumentExtension || utils.MatchesAnyPattern(relativePath, ignorePatterns) {
			return nil
		}
		documents = append(documents, SourceDocument{
			Name: strings.TrimSuffix(relativePath, utils.SourceDocumentExtension),
			Path: path,
		})
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf("discover documents in %s: %w", sourceDirectory, walkError)
	}
	sort.Slice(documents, func(left, right int) bool {
		return documents[left].Name < documents[right].Name
	})
	return documents, nil
}
