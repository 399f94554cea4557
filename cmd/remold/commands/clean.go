package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/remold/internal/adapters/config"
	"go.trai.ch/remold/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the checksum cache and transient state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString(config.FlagConfig)

			o := &config.Overrides{}
			if cmd.Flags().Changed(config.FlagOutputDir) {
				dir, _ := cmd.Flags().GetString(config.FlagOutputDir)
				o.OutputDir = &dir
			}

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: configPath,
				Overrides:  o,
			})
		},
	}
	addConfigFlag(cmd.Flags())
	cmd.Flags().StringP(config.FlagOutputDir, "o", "", "Output directory whose state is removed")
	return cmd
}
