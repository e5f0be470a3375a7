// Package build runs the documentation pipeline: discover source documents,
// parse them, hand each tree to the registered listeners and write the result.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/lintdoc/internal/config"
	"github.com/temirov/lintdoc/internal/doctree"
	"github.com/temirov/lintdoc/internal/output"
	"github.com/temirov/lintdoc/internal/render"
	"github.com/temirov/lintdoc/internal/types"
)

const (
	outputDirectoryPermissions = 0o755
	outputFilePermissions      = 0o644
)

// Listener reacts to the builder lifecycle events.
type Listener interface {
	Directives() doctree.Directives
	OnBuilderInitialized(settings config.Settings) error
	OnDoctreeResolved(ctx context.Context, document *doctree.Document, documentName string) (*doctree.Document, error)
}

// WrittenDocument records one output file of a pass.
type WrittenDocument struct {
	Name       string
	SourcePath string
	OutputPath string
}

// Result summarises a pass.
type Result struct {
	Documents []WrittenDocument
}

// Builder runs build passes. Passes are sequential.
type Builder struct {
	listeners []Listener
	logger    *zap.Logger
}

// NewBuilder constructs a Builder notifying listeners in order.
func NewBuilder(logger *zap.Logger, listeners ...Listener) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{listeners: listeners, logger: logger}
}

// Build runs one pass with settings. progress may be nil.
func (builder *Builder) Build(ctx context.Context, settings config.Settings, progress output.StreamRenderer) (Result, error) {
	writer, writerError := render.NewWriter(settings.Format)
	if writerError != nil {
		return Result{}, writerError
	}
	ignorePatterns, ignoreError := config.LoadSourceIgnorePatterns(settings.SourceDir, settings.OutputDir)
	if ignoreError != nil {
		return Result{}, ignoreError
	}
	passSettings := settings.WithIgnorePatterns(ignorePatterns.Lint)

	builder.logger.Debug("build pass started",
		zap.String("event", types.EventBuilderInitialized),
		zap.String("source", passSettings.SourceDir),
		zap.String("output", passSettings.OutputDir),
	)
	for _, listener := range builder.listeners {
		if initError := listener.OnBuilderInitialized(passSettings); initError != nil {
			return Result{}, fmt.Errorf("%s: %w", types.EventBuilderInitialized, initError)
		}
	}

	directives := doctree.Directives{}
	for _, listener := range builder.listeners {
		for name, handler := range listener.Directives() {
			directives[name] = handler
		}
	}

	documents, discoverError := DiscoverDocuments(passSettings.SourceDir, ignorePatterns.Documents)
	if discoverError != nil {
		return Result{}, discoverError
	}

	var result Result
	for _, sourceDocument := range documents {
		if contextError := ctx.Err(); contextError != nil {
			return result, contextError
		}
		written, documentError := builder.buildDocument(ctx, sourceDocument, directives, writer, passSettings.OutputDir)
		if documentError != nil {
			return result, documentError
		}
		result.Documents = append(result.Documents, written)
		if progress != nil {
			if progressError := progress.Handle(output.Event{Kind: output.EventKindDocument, Document: written.Name, Path: written.OutputPath}); progressError != nil {
				return result, progressError
			}
		}
	}
	if progress != nil {
		if progressError := progress.Handle(output.Event{Kind: output.EventKindSummary, Documents: len(result.Documents)}); progressError != nil {
			return result, progressError
		}
	}
	builder.logger.Debug("build pass finished", zap.Int("documents", len(result.Documents)))
	return result, nil
}

func (builder *Builder) buildDocument(ctx context.Context, sourceDocument SourceDocument, directives doctree.Directives, writer render.Writer, outputDirectory string) (WrittenDocument, error) {
	// #nosec G304
	content, readError := os.ReadFile(sourceDocument.Path)
	if readError != nil {
		return WrittenDocument{}, fmt.Errorf("read %s: %w", sourceDocument.Path, readError)
	}
	document, parseError := doctree.Parse(sourceDocument.Name, string(content), directives)
	if parseError != nil {
		return WrittenDocument{}, parseError
	}
	for _, listener := range builder.listeners {
		resolved, resolveError := listener.OnDoctreeResolved(ctx, document, sourceDocument.Name)
		if resolveError != nil {
			return WrittenDocument{}, fmt.Errorf("%s: %w", types.EventDoctreeResolved, resolveError)
		}
		document = resolved
	}

	outputPath := filepath.Join(outputDirectory, filepath.FromSlash(sourceDocument.Name)+writer.FileExtension())
	if mkdirError := os.MkdirAll(filepath.Dir(outputPath), outputDirectoryPermissions); mkdirError != nil {
		return WrittenDocument{}, fmt.Errorf("create output directory for %s: %w", sourceDocument.Name, mkdirError)
	}
	// #nosec G304
	outputFile, createError := os.OpenFile(outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, outputFilePermissions)
	if createError != nil {
		return WrittenDocument{}, fmt.Errorf("create %s: %w", outputPath, createError)
	}
	writeError := writer.Write(outputFile, document)
	closeError := outputFile.Close()
	if writeError != nil {
		return WrittenDocument{}, writeError
	}
	if closeError != nil {
		return WrittenDocument{}, fmt.Errorf("close %s: %w", outputPath, closeError)
	}
	builder.logger.Debug("document written", zap.String("document", sourceDocument.Name), zap.String("path", outputPath))
	return WrittenDocument{Name: sourceDocument.Name, SourcePath: sourceDocument.Path, OutputPath: outputPath}, nil
}
