package cli

import (
	"github.com/spf13/cobra"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/validate"
)

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "validate <catalog-href>",
		Short: "Run the structural validator over a catalog graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			cat, rw, err := loadCatalog(ctx, args[0], noCache)
			if err != nil {
				return err
			}

			err = validate.ValidateAll(ctx, rw, validate.Structural{}, cat)
			if errors.Is(err, errors.ErrCodeValidation) {
				printError("Validation failed")
				printDetail("%s", errors.UserMessage(err))
				return err
			}
			if err != nil {
				return err
			}

			printSuccess("Catalog %q is structurally valid", cat.ID())
			prog.done("Validated catalog")
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the HTTP response cache")
	return cmd
}
