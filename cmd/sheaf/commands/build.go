package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [selector]",
		Short: "Write the aggregated stylesheet for a selector to stdout",
		Long: "Write the aggregated stylesheet for a comma-separated selector to stdout.\n" +
			"Without a selector every fragment is included. The artifact cache is used and updated.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var selector string
			if len(args) == 1 {
				selector = args[0]
			}
			return c.app.Build(cmd.Context(), c.opts, selector, cmd.OutOrStdout())
		},
	}
}
