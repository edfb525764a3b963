package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacgraph/stacgraph/pkg/publish"
	"github.com/stacgraph/stacgraph/pkg/stac"
	"github.com/stacgraph/stacgraph/pkg/stacio"
)

// newPublishCmd creates the publish command.
func newPublishCmd() *cobra.Command {
	var (
		manifestPath string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "publish <catalog-href>",
		Short: "Normalize, validate, and save a catalog per a manifest",
		Long: `Publish runs the full pipeline described by a TOML manifest: normalize
every href under the manifest base, optionally validate the graph, and
save one document per object under the manifest's catalog type.

Manifest format:

  base = "https://example.com/catalogs/landsat"
  catalog_type = "relative-published"
  validate = true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, err := publish.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			cat, rw, err := loadCatalog(ctx, args[0], noCache)
			if err != nil {
				return err
			}

			logger.Debug("publishing", "base", m.Base, "type", m.CatalogType)

			// Reads may come from the source backend; writes must go to
			// the manifest base.
			res, err := publish.Run(ctx, publishIO{Reader: rw, Writer: stacio.ForHref(m.Base)}, cat, m)
			if err != nil {
				return err
			}

			printSuccess("Published %q", cat.ID())
			printDetail("base: %s", res.Base)
			printDetail("catalog type: %s", res.CatalogType)
			logger.Info(fmt.Sprintf("Publish finished in %s", res.Duration.Round(time.Millisecond)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "stacgraph.toml", "path to the publish manifest")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the HTTP response cache")
	return cmd
}

// publishIO splits reads and writes across two backends: resolution keeps
// reading from the source, documents land under the publish base.
type publishIO struct {
	stac.Reader
	stac.Writer
}
