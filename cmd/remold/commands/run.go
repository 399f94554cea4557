package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/remold/internal/adapters/config"
	"go.trai.ch/remold/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Transform every configured source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString(config.FlagConfig)
			inProcess, _ := cmd.Flags().GetBool("in-process")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath: configPath,
				Overrides:  overridesFromFlags(cmd),
				InProcess:  inProcess,
			})
		},
	}
	addConfigFlag(cmd.Flags())
	addOverrideFlags(cmd.Flags())
	cmd.Flags().Bool("in-process", false, "Process every source in this process instead of worker processes")
	return cmd
}
