package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/lintdoc/internal/config"
)

const (
	initUse               = "init"
	initShortDescription  = "write a default lintdoc.yaml"
	initLongDescription   = "Write the default configuration into the working directory, or into the global configuration directory with --global."
	globalFlagName        = "global"
	forceFlagName         = "force"
	globalFlagDescription = "write into the global configuration directory"
	forceFlagDescription  = "replace an existing configuration file"
	initWrittenFormat     = "configuration written to %s\n"
)

func (app *application) newInitCommand() *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: app.dependencies.WorkingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), initWrittenFormat, writtenPath)
			return printError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &globalTarget, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
