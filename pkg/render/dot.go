// Package render turns a graph neighborhood into Graphviz output.
//
// A full first-link graph has millions of nodes and is unrenderable, so
// rendering always starts from a center node and expands a bounded
// neighborhood: the forward successor chain on one side and the feeder trees
// on the other. Terminal nodes are drawn with a distinct fill so cycles and
// dead ends stand out.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
)

// Options configures neighborhood rendering.
type Options struct {
	// Depth bounds how many predecessor levels are expanded around the
	// center. The forward chain is always followed until it leaves the
	// neighborhood budget. Defaults to DefaultDepth.
	Depth int

	// MaxNodes caps the neighborhood size. Defaults to DefaultMaxNodes.
	MaxNodes int

	// Heat, when set, annotates each node label with its heat value.
	Heat map[string]int
}

// Rendering defaults.
const (
	DefaultDepth    = 2
	DefaultMaxNodes = 50
)

// Neighborhood collects the nodes around center: the center itself, its
// predecessors up to opts.Depth levels, and its forward chain. The result is
// sorted for deterministic output. Returns nil if center is not in g.
func Neighborhood(g *funcgraph.Graph, center string, opts Options) []string {
	if !g.Has(center) {
		return nil
	}
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}

	seen := map[string]struct{}{center: {}}

	// Feeder side: level-bounded BFS over the reverse index.
	frontier := []string{center}
	for depth := 0; depth < opts.Depth && len(seen) < opts.MaxNodes; depth++ {
		var next []string
		for _, id := range frontier {
			for _, p := range g.Predecessors(id) {
				if _, ok := seen[p]; ok {
					continue
				}
				if len(seen) >= opts.MaxNodes {
					break
				}
				seen[p] = struct{}{}
				next = append(next, p)
			}
		}
		frontier = next
	}

	// Forward side: follow the successor chain until it cycles back into
	// the neighborhood or the budget runs out.
	cur := center
	for len(seen) < opts.MaxNodes {
		next, ok := g.Next(cur)
		if !ok {
			break
		}
		if _, ok := seen[next]; ok {
			break
		}
		seen[next] = struct{}{}
		cur = next
	}

	nodes := make([]string, 0, len(seen))
	for id := range seen {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// ToDOT converts the neighborhood of center to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Terminal nodes are filled grey; the center node gets a gold fill so it is
// easy to spot in a dense neighborhood.
func ToDOT(g *funcgraph.Graph, cls *funcgraph.Classification, center string, opts Options) string {
	nodes := Neighborhood(g, center, opts)

	var buf bytes.Buffer
	buf.WriteString("digraph wikiflow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	inSet := make(map[string]struct{}, len(nodes))
	for _, id := range nodes {
		inSet[id] = struct{}{}
	}

	for _, id := range nodes {
		attrs := fmtAttrs(cls, id, center, fmtLabel(id, opts.Heat))
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range nodes {
		next, ok := g.Next(id)
		if !ok {
			continue
		}
		if _, inside := inSet[next]; !inside {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", id, next)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id string, heat map[string]int) string {
	if heat == nil {
		return id
	}
	return fmt.Sprintf("%s\nheat: %d", id, heat[id])
}

func fmtAttrs(cls *funcgraph.Classification, id, center, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case id == center:
		attrs = append(attrs, "fillcolor=gold")
	case cls != nil && cls.Terminal(id):
		attrs = append(attrs, "fillcolor=lightgrey", "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the image scales to its
// container instead of using Graphviz's fixed point sizes.
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
