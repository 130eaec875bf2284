// Package commands implements the CLI commands for sheaf.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/sheaf/internal/app"
	"go.trai.ch/sheaf/internal/build"
)

// CLI represents the command line interface for sheaf.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Serve(ctx context.Context, opts app.Options, serveOpts app.ServeOptions) error
	Build(ctx context.Context, opts app.Options, selector string, w io.Writer) error
	Clean(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sheaf",
		Short:         "Serve stylesheets aggregated from fragments at request time",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	// Bound before the version flag so -v stays with --verbose.
	bindGlobalFlags(rootCmd.PersistentFlags(), &c.opts)

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// bindGlobalFlags registers the flags shared by every command.
func bindGlobalFlags(flags *pflag.FlagSet, opts *app.Options) {
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to sheaf.yaml (default: <dir>/sheaf.yaml)")
	flags.StringVarP(&opts.Dir, "dir", "d", "", "Serving directory holding the fragments")
	flags.BoolVar(&opts.JSON, "json", false, "Write logs as JSON")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
