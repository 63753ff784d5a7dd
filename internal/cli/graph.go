package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wikiflowhq/wikiflow/pkg/errors"
	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
	"github.com/wikiflowhq/wikiflow/pkg/graphio"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
	"github.com/wikiflowhq/wikiflow/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	edges    string
	target   string
	depth    int
	maxNodes int
	format   string // dot or svg
	output   string // output file (stdout if empty)
	noCache  bool
}

// graphCommand creates the graph export command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{depth: render.DefaultDepth, maxNodes: render.DefaultMaxNodes, format: "dot"}

	cmd := &cobra.Command{
		Use:   "graph <title>",
		Short: "Export a title's neighborhood as DOT or SVG",
		Long: `Export the local neighborhood of a title - its feeder articles and its
forward first-link chain - as a Graphviz diagram, annotated with heat.

Examples:
  wikiflow graph Philosophy --edges data/edges
  wikiflow graph Cat --edges data/edges --format svg -o cat.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.edges, "edges", "e", "", "edge file or shard directory")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "convergence target (default Philosophy)")
	cmd.Flags().IntVar(&opts.depth, "depth", opts.depth, "feeder levels to expand")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "neighborhood size cap")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, title string, opts graphOpts) error {
	edges := c.edgesPath(opts.edges)
	if edges == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no edge source: %s", configCommandHint())
	}
	format := strings.ToLower(opts.format)
	if format != "dot" && format != "svg" {
		return errors.New(errors.ErrCodeUnsupported, "format %q (must be dot or svg)", opts.format)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		EdgesPath: edges,
		Target:    c.target(opts.target),
		Logger:    c.Logger,
	})
	if err != nil {
		return err
	}

	forward, err := graphio.LoadEdges(edges)
	if err != nil {
		return fmt.Errorf("load edges: %w", err)
	}
	g := funcgraph.New(forward)
	if !g.Has(title) {
		return errors.New(errors.ErrCodeNodeNotFound, "unknown title %q", title)
	}
	cls := funcgraph.Classify(g)

	dot := render.ToDOT(g, cls, title, render.Options{
		Depth:    opts.depth,
		MaxNodes: opts.maxNodes,
		Heat:     result.Heat,
	})

	var data []byte
	if format == "svg" {
		if data, err = render.RenderSVG(dot); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	} else {
		data = []byte(dot)
	}

	if opts.output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Exported %s neighborhood", title)
	printFile(opts.output)
	return nil
}
