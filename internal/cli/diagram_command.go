package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/lintdoc/internal/config"
	"github.com/temirov/lintdoc/internal/pyreverse"
	"github.com/temirov/lintdoc/internal/pysource"
)

const (
	diagramUse              = "diagram [target]"
	diagramShortDescription = "run pyreverse and write the diagrams"
	diagramLongDescription  = `Build the pyreverse command line for the target and run it, writing the
generated diagrams into the output directory. Use --dry-run to print the
command line instead.`
	diagramUsageExample = `  # Print the command for a class diagram of Widget with all ancestors
  lintdoc diagram --class Widget --ancestor-depth ALL --dry-run

  # Write package and class diagrams as svg
  lintdoc diagram --format svg --output-dir docs/_static shop`

	classFlagName            = "class"
	ancestorDepthFlagName    = "ancestor-depth"
	classDepthFlagName       = "class-depth"
	filterFlagName           = "filter"
	classesOnlyFlagName      = "classes-only"
	builtinsFlagName         = "builtins"
	moduleNamesFlagName      = "module-names"
	projectFlagName          = "project"
	dryRunFlagName           = "dry-run"
	classFlagDescription     = "class to diagram; a bare name is resolved in the target sources"
	ancestorDepthDescription = "ancestor levels to show: ALL or a number"
	classDepthDescription    = "associated class levels to show: ALL or a number"
	filterFlagDescription    = "attribute filter: PUB_ONLY, SPECIAL, OTHER or ALL"
	classesOnlyDescription   = "show classes only"
	builtinsDescription      = "include builtin objects"
	moduleNamesDescription   = "show module names in class names"
	projectFlagDescription   = "project name used in output file names"
	diagramFormatDescription = "pyreverse output format, for example dot, svg or png"
	diagramOutputDescription = "directory receiving the diagrams"
	dryRunFlagDescription    = "print the pyreverse command line without running it"
	diagramWrittenFormat     = "%s\n"
	diagramFilePermissions   = 0o644
	diagramDirectoryMode     = 0o755
)

var errNoDiagrams = errors.New("pyreverse produced no diagrams")

type diagramFlags struct {
	className       string
	ancestorDepth   string
	classDepth      string
	attributeFilter string
	classesOnly     bool
	builtins        bool
	moduleNames     bool
	projectName     string
	outputFormat    string
	outputDirectory string
	dryRun          bool
}

func (app *application) newDiagramCommand() *cobra.Command {
	var flags diagramFlags

	diagramCommand := &cobra.Command{
		Use:     diagramUse,
		Short:   diagramShortDescription,
		Long:    diagramLongDescription,
		Example: diagramUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			overrides := map[string]any{}
			if len(arguments) == 1 {
				overrides[config.KeyTarget] = arguments[0]
			}
			setOverride(command, overrides, projectFlagName, config.KeyProject, flags.projectName)
			setOverride(command, overrides, formatFlagName, config.KeyDiagramFormat, flags.outputFormat)
			setOverride(command, overrides, moduleNamesFlagName, config.KeyDiagramModules, flags.moduleNames)
			settings, settingsError := app.loadSettings(overrides)
			if settingsError != nil {
				return settingsError
			}
			options, optionsError := app.diagramOptions(settings, flags)
			if optionsError != nil {
				return optionsError
			}
			if flags.dryRun {
				_, writeError := fmt.Fprintln(command.OutOrStdout(), pyreverse.BuildCommand(options).String())
				return writeError
			}

			diagrams, generateError := pyreverse.Generate(command.Context(), app.commandRunner(), options, app.logger)
			if generateError != nil {
				return generateError
			}
			if len(diagrams) == 0 {
				return errNoDiagrams
			}
			outputDirectory := flags.outputDirectory
			if !filepath.IsAbs(outputDirectory) && app.dependencies.WorkingDirectory != "" {
				outputDirectory = filepath.Join(app.dependencies.WorkingDirectory, outputDirectory)
			}
			if outputDirectory == "" {
				outputDirectory = "."
			}
			if mkdirError := os.MkdirAll(outputDirectory, diagramDirectoryMode); mkdirError != nil {
				return fmt.Errorf("create diagram directory %s: %w", outputDirectory, mkdirError)
			}
			for _, diagram := range diagrams {
				diagramPath := filepath.Join(outputDirectory, filepath.Base(diagram.Path))
				if writeError := os.WriteFile(diagramPath, diagram.Content, diagramFilePermissions); writeError != nil {
					return fmt.Errorf("write diagram %s: %w", diagramPath, writeError)
				}
				if _, printError := fmt.Fprintf(command.OutOrStdout(), diagramWrittenFormat, diagramPath); printError != nil {
					return printError
				}
			}
			return nil
		},
	}
	flagSet := diagramCommand.Flags()
	flagSet.StringVar(&flags.className, classFlagName, "", classFlagDescription)
	flagSet.StringVar(&flags.ancestorDepth, ancestorDepthFlagName, "", ancestorDepthDescription)
	flagSet.StringVar(&flags.classDepth, classDepthFlagName, "", classDepthDescription)
	flagSet.StringVar(&flags.attributeFilter, filterFlagName, "", filterFlagDescription)
	registerBooleanFlag(flagSet, &flags.classesOnly, classesOnlyFlagName, false, classesOnlyDescription)
	registerBooleanFlag(flagSet, &flags.builtins, builtinsFlagName, false, builtinsDescription)
	registerBooleanFlag(flagSet, &flags.moduleNames, moduleNamesFlagName, false, moduleNamesDescription)
	flagSet.StringVar(&flags.projectName, projectFlagName, "", projectFlagDescription)
	flagSet.StringVar(&flags.outputFormat, formatFlagName, "", diagramFormatDescription)
	flagSet.StringVar(&flags.outputDirectory, outputDirectoryFlagName, "", diagramOutputDescription)
	registerBooleanFlag(flagSet, &flags.dryRun, dryRunFlagName, false, dryRunFlagDescription)
	return diagramCommand
}

func (app *application) diagramOptions(settings config.Settings, flags diagramFlags) (pyreverse.Options, error) {
	options := settings.DiagramOptions()
	ancestorDepth, ancestorError := pyreverse.ParseDepth(flags.ancestorDepth)
	if ancestorError != nil {
		return pyreverse.Options{}, fmt.Errorf("--%s: %w", ancestorDepthFlagName, ancestorError)
	}
	classDepth, classDepthError := pyreverse.ParseDepth(flags.classDepth)
	if classDepthError != nil {
		return pyreverse.Options{}, fmt.Errorf("--%s: %w", classDepthFlagName, classDepthError)
	}
	options.AncestorDepth = ancestorDepth
	options.AssociatedClassesDepth = classDepth
	options.AttributeFilter = strings.ToUpper(strings.TrimSpace(flags.attributeFilter))
	options.ClassesOnly = flags.classesOnly
	options.ShowBuiltins = flags.builtins
	options.OutputName = app.qualifyClassName(settings.Target, flags.className)
	return options, nil
}

// qualifyClassName resolves a bare class name against the target sources and
// keeps the name unchanged when it cannot be resolved.
func (app *application) qualifyClassName(target string, className string) string {
	trimmed := strings.TrimSpace(className)
	if trimmed == "" || strings.Contains(trimmed, ".") {
		return trimmed
	}
	index, indexError := pysource.NewClassIndex(target)
	if indexError != nil {
		app.logger.Debug("class index unavailable", zap.Error(indexError))
		return trimmed
	}
	qualified, resolveError := index.Resolve(trimmed)
	if resolveError != nil {
		app.logger.Debug("class name kept unqualified", zap.String("class", trimmed), zap.Error(resolveError))
		return trimmed
	}
	return qualified
}
