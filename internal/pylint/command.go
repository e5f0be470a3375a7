package pylint

import (
	"strings"

	"github.com/temirov/lintdoc/internal/runner"
)

const (
	// DefaultExecutable is the diagnostic tool name used when Options.Executable is empty.
	DefaultExecutable = "pylint"

	parseableOutputFlag  = "--output-format=parseable"
	disableReportsFlag   = "--reports=n"
	ignoreFlagPrefix     = "--ignore="
	jobsFlagPrefix       = "--jobs="
	confidenceFlagPrefix = "--confidence="
	enableFlagPrefix     = "--enable="
	disableFlagPrefix    = "--disable="
)

// Options describes one pylint invocation.
type Options struct {
	Executable string
	Ignore     string
	Jobs       string
	Confidence string
	Enable     string
	Disable    string
	Target     string
}

// BuildCommand returns the pylint argument vector for options.
// Output is always requested in the parseable format understood by Parse.
func BuildCommand(options Options) runner.Invocation {
	executable := options.Executable
	if executable == "" {
		executable = DefaultExecutable
	}
	invocation := runner.Invocation{executable, parseableOutputFlag, disableReportsFlag}
	invocation = appendValueFlag(invocation, ignoreFlagPrefix, options.Ignore)
	invocation = appendValueFlag(invocation, jobsFlagPrefix, options.Jobs)
	invocation = appendValueFlag(invocation, confidenceFlagPrefix, options.Confidence)
	invocation = appendValueFlag(invocation, enableFlagPrefix, options.Enable)
	invocation = appendValueFlag(invocation, disableFlagPrefix, options.Disable)
	return append(invocation, options.Target)
}

func appendValueFlag(invocation runner.Invocation, prefix string, value string) runner.Invocation {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return invocation
	}
	return append(invocation, prefix+trimmed)
}
