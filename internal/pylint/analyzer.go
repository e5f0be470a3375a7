package pylint

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/lintdoc/internal/runner"
)

// pylint encodes its exit status as a bit field.
const (
	exitFatal      = 1
	exitUsageError = 32
)

// ErrFatalExit reports a pylint run that aborted instead of producing messages.
var ErrFatalExit = errors.New("pylint: fatal exit status")

// MessagesOnlyExit reports whether status only signals that messages were emitted.
func MessagesOnlyExit(status int) bool {
	return status > 0 && status&(exitFatal|exitUsageError) == 0
}

// Analyzer runs pylint and parses its output.
type Analyzer struct {
	runner runner.Runner
	parser Parser
	logger *zap.Logger
}

// NewAnalyzer constructs an Analyzer around commandRunner.
func NewAnalyzer(commandRunner runner.Runner, parser Parser, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{runner: commandRunner, parser: parser, logger: logger}
}

// Analyze runs pylint for options in workingDirectory and returns the parsed records.
func (analyzer *Analyzer) Analyze(ctx context.Context, options Options, workingDirectory string) ([]Record, error) {
	invocation := BuildCommand(options)
	result, runError := analyzer.runner.Run(ctx, invocation, workingDirectory)
	if runError != nil {
		var exitError *runner.ExitError
		if !errors.As(runError, &exitError) {
			return nil, fmt.Errorf("run pylint: %w", runError)
		}
		if !MessagesOnlyExit(exitError.Result.ExitCode) {
			return nil, fmt.Errorf("%w %d: %s", ErrFatalExit, exitError.Result.ExitCode, exitError.Result.Stderr)
		}
		result = exitError.Result
	}
	records := analyzer.parser.Parse(result.Stdout)
	analyzer.logger.Debug("pylint output parsed",
		zap.String("target", options.Target),
		zap.Int("records", len(records)),
	)
	return records, nil
}
