package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/render/dot"
)

// newVizCmd creates the viz command.
func newVizCmd() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "viz <catalog-href>",
		Short: "Export the catalog graph as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			cat, rw, err := loadCatalog(ctx, args[0], noCache)
			if err != nil {
				return err
			}

			graph, err := dot.ToDOT(ctx, rw, cat, dot.Options{Detailed: detailed})
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "dot":
				data = []byte(graph)
			case "svg":
				data, err = dot.RenderSVG(graph)
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q: use dot or svg", format)
			}

			if output == "-" {
				fmt.Print(string(data))
			} else {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
				}
				printFile(output)
			}
			prog.done(fmt.Sprintf("Exported catalog graph as %s", format))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "catalog.svg", "output file, - for stdout")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "include types and hrefs in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the HTTP response cache")
	return cmd
}
