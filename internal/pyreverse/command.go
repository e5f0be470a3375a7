package pyreverse

import (
	"strconv"

	"github.com/temirov/lintdoc/internal/runner"
)

const (
	outputFormatFlag        = "-o"
	outputNameFlag          = "-c"
	allAncestorsFlag        = "-A"
	ancestorLevelsFlag      = "-a"
	allAssociatedFlag       = "-S"
	associatedLevelsFlag    = "-s"
	moduleNamesEnabledFlag  = "-my"
	moduleNamesDisabledFlag = "-mn"
	attributeFilterFlag     = "-f"
	classesOnlyFlag         = "-k"
	showBuiltinsFlag        = "-b"
)

// BuildCommand returns the pyreverse argument vector for options.
// Flags follow a fixed order expected by the pyreverse argument parser;
// the target is the last positional token unless a project name follows it.
func BuildCommand(options Options) runner.Invocation {
	var flags []string
	if options.OutputFormat != "" {
		flags = append(flags, outputFormatFlag+options.OutputFormat)
	}
	if options.OutputName != "" {
		flags = append(flags, outputNameFlag+options.OutputName)
	}
	flags = appendDepthFlag(flags, options.AncestorDepth, allAncestorsFlag, ancestorLevelsFlag)
	flags = appendDepthFlag(flags, options.AssociatedClassesDepth, allAssociatedFlag, associatedLevelsFlag)
	if options.ModuleNames {
		flags = append(flags, moduleNamesEnabledFlag)
	} else {
		flags = append(flags, moduleNamesDisabledFlag)
	}
	if IsRecognizedFilter(options.AttributeFilter) {
		flags = append(flags, attributeFilterFlag+options.AttributeFilter)
	}
	if options.ClassesOnly {
		flags = append(flags, classesOnlyFlag)
	}
	if options.ShowBuiltins {
		flags = append(flags, showBuiltinsFlag)
	}

	executable := options.Executable
	if executable == "" {
		executable = DefaultExecutable
	}
	invocation := make(runner.Invocation, 0, len(flags)+3)
	invocation = append(invocation, executable)
	invocation = append(invocation, flags...)
	invocation = append(invocation, options.Target)
	if options.ProjectName != "" {
		invocation = append(invocation, options.ProjectName)
	}
	return invocation
}

func appendDepthFlag(flags []string, depth Depth, allFlag string, levelsFlag string) []string {
	if depth.IsAll() {
		return append(flags, allFlag)
	}
	if levels, explicit := depth.Value(); explicit {
		return append(flags, levelsFlag+strconv.Itoa(levels))
	}
	return flags
}
