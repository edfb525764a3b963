package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stacgraph/stacgraph/pkg/buildinfo"
)

// Execute runs the stacgraph CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree under
// ctx. The logger is attached to the command context and accessible to all
// commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "stacgraph",
		Short:        "Stacgraph navigates and publishes STAC catalog trees",
		Long:         `Stacgraph is a CLI tool for working with STAC catalogs: inspect the hierarchy, normalize hrefs, validate structure, publish under a layout convention, and visualize the graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDescribeCmd())
	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newPublishCmd())
	root.AddCommand(newVizCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
