// Package dot exports a catalog graph as Graphviz DOT and renders it to
// SVG. Catalogs, collections, and items use distinct shapes so the
// hierarchy reads at a glance.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/stac"
)

// Options configures graph export.
type Options struct {
	// Detailed adds type and self href lines to node labels.
	// When false, only the object id is shown.
	Detailed bool
}

// ToDOT walks the catalog graph and emits it in Graphviz DOT format.
// Child and item links are resolved through r as the walk reaches them.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(ctx context.Context, r stac.Reader, root *stac.Catalog, opts Options) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph catalog {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	declared := map[string]bool{}
	var edges []string

	err := root.Walk(ctx, r, func(cat stac.Container, children []stac.Container, items []*stac.Item) error {
		declareNode(&buf, declared, cat, opts)
		for _, child := range children {
			declareNode(&buf, declared, child, opts)
			edges = append(edges, fmt.Sprintf("  %q -> %q;", cat.ID(), child.ID()))
		}
		for _, item := range items {
			declareNode(&buf, declared, item, opts)
			edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];", cat.ID(), item.ID()))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func declareNode(buf *bytes.Buffer, declared map[string]bool, obj stac.Object, opts Options) {
	if declared[obj.ID()] {
		return
	}
	declared[obj.ID()] = true

	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(obj, opts.Detailed))}
	switch obj.Type() {
	case stac.TypeCatalog:
		attrs = append(attrs, "shape=box", `style="rounded,filled"`, "fillcolor=white")
	case stac.TypeCollection:
		attrs = append(attrs, "shape=box", `style="rounded,filled"`, "fillcolor=lightblue")
	case stac.TypeItem:
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=lightgrey")
	}
	fmt.Fprintf(buf, "  %q [%s];\n", obj.ID(), strings.Join(attrs, ", "))
}

func nodeLabel(obj stac.Object, detailed bool) string {
	if !detailed {
		return obj.ID()
	}
	parts := []string{obj.ID(), string(obj.Type())}
	if href := obj.SelfHref(); href != "" {
		parts = append(parts, href)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox starts at
// the origin and the element carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
