package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacgraph/stacgraph/pkg/stac"
)

// newDescribeCmd creates the describe command.
func newDescribeCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "describe <catalog-href>",
		Short: "Print a styled tree of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			cat, rw, err := loadCatalog(ctx, args[0], noCache)
			if err != nil {
				return err
			}

			tree, stats, err := describeTree(ctx, rw, cat)
			if err != nil {
				return err
			}
			fmt.Print(tree)
			prog.done(fmt.Sprintf("Described %d container(s) and %d item(s)", stats.containers, stats.items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the HTTP response cache")
	return cmd
}

type treeStats struct {
	containers int
	items      int
}

// describeTree renders the catalog hierarchy as an indented, styled tree.
func describeTree(ctx context.Context, r stac.Reader, root *stac.Catalog) (string, treeStats, error) {
	var b strings.Builder
	var stats treeStats
	depths := map[string]int{root.ID(): 0}

	err := root.Walk(ctx, r, func(cat stac.Container, children []stac.Container, items []*stac.Item) error {
		depth := depths[cat.ID()]
		indent := strings.Repeat("  ", depth)

		style := styleCatalog
		if cat.Type() == stac.TypeCollection {
			style = styleCollection
		}
		b.WriteString(indent + style.Render(cat.ID()) + " " + StyleDim.Render(string(cat.Type())))
		if href := cat.SelfHref(); href != "" {
			b.WriteString(" " + StyleDim.Render(href))
		}
		b.WriteString("\n")
		stats.containers++

		for _, item := range items {
			b.WriteString(indent + "  " + styleItem.Render(item.ID()) + " " + StyleDim.Render("Item"))
			if n := len(item.AssetKeys()); n > 0 {
				b.WriteString(" " + StyleDim.Render(fmt.Sprintf("(%d asset(s))", n)))
			}
			b.WriteString("\n")
			stats.items++
		}
		for _, child := range children {
			depths[child.ID()] = depth + 1
		}
		return nil
	})
	if err != nil {
		return "", stats, err
	}
	return b.String(), stats, nil
}
