package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrExecutableNotFound reports that the invoked tool is not installed or not on PATH.
var ErrExecutableNotFound = errors.New("runner: executable not found")

// ErrEmptyInvocation reports an invocation without an executable.
var ErrEmptyInvocation = errors.New("runner: empty invocation")

// Result captures the output of one completed process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError reports a process that ran but exited with a non-zero status.
// The captured Result is kept so callers can apply tool-specific exit policies.
type ExitError struct {
	Invocation Invocation
	Result     Result
}

func (exitError *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", exitError.Invocation.Executable(), exitError.Result.ExitCode)
}

// Runner executes an invocation in a working directory and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, invocation Invocation, workingDirectory string) (Result, error)
}

// ExecRunner runs invocations as operating system processes.
type ExecRunner struct {
	logger *zap.Logger
}

// NewExecRunner constructs an ExecRunner. A nil logger disables logging.
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger}
}

// Run starts the process, drains stdout and stderr concurrently, and waits for it to exit.
// There is no timeout; cancelling ctx is the only way to stop a hung tool.
func (execRunner *ExecRunner) Run(ctx context.Context, invocation Invocation, workingDirectory string) (Result, error) {
	executable := invocation.Executable()
	if executable == "" {
		return Result{}, ErrEmptyInvocation
	}
	resolvedExecutable, lookupError := exec.LookPath(executable)
	if lookupError != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrExecutableNotFound, executable)
	}

	// #nosec G204
	command := exec.CommandContext(ctx, resolvedExecutable, invocation.Arguments()...)
	command.Dir = workingDirectory

	stdoutPipe, stdoutError := command.StdoutPipe()
	if stdoutError != nil {
		return Result{}, fmt.Errorf("attach stdout for %s: %w", executable, stdoutError)
	}
	stderrPipe, stderrError := command.StderrPipe()
	if stderrError != nil {
		return Result{}, fmt.Errorf("attach stderr for %s: %w", executable, stderrError)
	}

	execRunner.logger.Debug("starting process",
		zap.Strings("argv", invocation),
		zap.String("dir", workingDirectory),
	)
	if startError := command.Start(); startError != nil {
		return Result{}, fmt.Errorf("start %s: %w", executable, startError)
	}

	var stdoutBuffer bytes.Buffer
	var stderrBuffer bytes.Buffer
	var drainGroup errgroup.Group
	drainGroup.Go(func() error {
		_, copyError := io.Copy(&stdoutBuffer, stdoutPipe)
		return copyError
	})
	drainGroup.Go(func() error {
		_, copyError := io.Copy(&stderrBuffer, stderrPipe)
		return copyError
	})
	drainError := drainGroup.Wait()
	waitError := command.Wait()

	result := Result{
		Stdout:   stdoutBuffer.String(),
		Stderr:   stderrBuffer.String(),
		ExitCode: command.ProcessState.ExitCode(),
	}
	execRunner.logger.Debug("process exited",
		zap.String("executable", executable),
		zap.Int("status", result.ExitCode),
		zap.Int("stdoutBytes", len(result.Stdout)),
	)

	if ctxError := ctx.Err(); ctxError != nil {
		return result, fmt.Errorf("%s interrupted: %w", executable, ctxError)
	}
	if waitError != nil {
		var processExitError *exec.ExitError
		if errors.As(waitError, &processExitError) {
			return result, &ExitError{Invocation: invocation, Result: result}
		}
		return result, fmt.Errorf("wait for %s: %w", executable, waitError)
	}
	if drainError != nil {
		return result, fmt.Errorf("read output of %s: %w", executable, drainError)
	}
	return result, nil
}

var _ Runner = (*ExecRunner)(nil)
