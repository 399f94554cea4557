package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/remold/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the remold version",
		Long: "Print the remold version and build information. The version is part of the " +
			"cache context, so upgrading remold invalidates cached sources.",
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmdo := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(cmdo, build.Version)
				return
			}
			_, _ = fmt.Fprintf(cmdo, "remold version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print the version number only")

	return cmd
}
