package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/remold/internal/adapters/config"
	"go.trai.ch/remold/internal/adapters/shell"
	"go.trai.ch/remold/internal/app"
)

func (c *CLI) newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    shell.WorkerCommand + " @argsfile",
		Short:  "Process one partition and print its summary",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString(config.FlagConfig)

			return c.app.Work(cmd.Context(), app.WorkOptions{
				ConfigPath: configPath,
				Overrides:  overridesFromFlags(cmd),
			})
		},
	}
	addConfigFlag(cmd.Flags())
	addOverrideFlags(cmd.Flags())
	return cmd
}
