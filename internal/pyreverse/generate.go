package pyreverse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/lintdoc/internal/runner"
)

// DefaultOutputFormat is the format pyreverse writes when none is requested.
const DefaultOutputFormat = "dot"

const temporaryDirectoryPattern = "lintdoc-pyreverse-*"

// Generate runs pyreverse for options in a scratch directory and returns the
// diagrams it wrote. A diagram named after options.OutputName is reported with
// that name as its Kind. The scratch directory is removed before returning,
// so only Content and the base name of Path remain meaningful.
func Generate(ctx context.Context, commandRunner runner.Runner, options Options, logger *zap.Logger) ([]Diagram, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workingDirectory, temporaryError := os.MkdirTemp("", temporaryDirectoryPattern)
	if temporaryError != nil {
		return nil, fmt.Errorf("create pyreverse directory: %w", temporaryError)
	}
	defer func() {
		if removeError := os.RemoveAll(workingDirectory); removeError != nil {
			logger.Warn("pyreverse directory not removed", zap.String("path", workingDirectory), zap.Error(removeError))
		}
	}()

	invocation := BuildCommand(options)
	if _, runError := commandRunner.Run(ctx, invocation, workingDirectory); runError != nil {
		return nil, fmt.Errorf("run pyreverse: %w", runError)
	}

	format := options.OutputFormat
	if format == "" {
		format = DefaultOutputFormat
	}
	diagrams, collectError := CollectDiagrams(workingDirectory, format, options.ProjectName)
	if collectError != nil {
		return nil, collectError
	}
	if options.OutputName != "" {
		classDiagramPath := filepath.Join(workingDirectory, options.OutputName+"."+format)
		// #nosec G304
		content, readError := os.ReadFile(classDiagramPath)
		switch {
		case readError == nil:
			diagrams = append([]Diagram{{Kind: options.OutputName, Format: format, Path: classDiagramPath, Content: content}}, diagrams...)
		case !os.IsNotExist(readError):
			return nil, fmt.Errorf("read diagram %s: %w", classDiagramPath, readError)
		}
	}
	logger.Debug("pyreverse diagrams collected",
		zap.String("target", options.Target),
		zap.Int("diagrams", len(diagrams)),
	)
	return diagrams, nil
}
