package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sheaf/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve aggregated stylesheets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Serve(cmd.Context(), c.opts, app.ServeOptions{
				Addr:  addr,
				Watch: watch,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Listen address (default from config, then :8080)")
	cmd.Flags().BoolP("watch", "w", false, "Invalidate cached artifacts as soon as fragments change")
	return cmd
}
