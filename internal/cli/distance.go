package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wikiflowhq/wikiflow/pkg/errors"
	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
	"github.com/wikiflowhq/wikiflow/pkg/graphio"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
)

// distanceCommand creates the distance command.
func (c *CLI) distanceCommand() *cobra.Command {
	var (
		edges   string
		target  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "distance <title>",
		Short: "Show the click distance from a title to the target",
		Long: `Show how many first-link clicks it takes from a title to reach the
convergence target, along with the full path.

Examples:
  wikiflow distance Cat --edges data/edges
  wikiflow distance "Ada Lovelace" --edges data/edges --target Mathematics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDistance(cmd.Context(), args[0], c.edgesPath(edges), c.target(target), noCache)
		},
	}

	cmd.Flags().StringVarP(&edges, "edges", "e", "", "edge file or shard directory")
	cmd.Flags().StringVarP(&target, "target", "t", "", "convergence target (default Philosophy)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runDistance(ctx context.Context, title, edges, target string, noCache bool) error {
	if edges == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no edge source: %s", configCommandHint())
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		EdgesPath: edges,
		Target:    target,
		Logger:    c.Logger,
	})
	if err != nil {
		return err
	}

	// The path walk needs the graph itself, not just the distance map.
	forward, err := graphio.LoadEdges(edges)
	if err != nil {
		return fmt.Errorf("load edges: %w", err)
	}
	g := funcgraph.New(forward)

	if !g.Has(title) {
		return errors.New(errors.ErrCodeNodeNotFound, "unknown title %q", title)
	}

	dist, ok := result.Distances[title]
	if !ok {
		printWarning("%s never reaches %s", title, target)
		return nil
	}

	printSuccess("%s reaches %s in %s clicks", StyleValue.Render(title), StyleValue.Render(target), StyleNumber.Render(fmt.Sprintf("%d", dist)))
	path := funcgraph.Path(g, result.Distances, title, target)
	printDetail("%s", strings.Join(path, " "+iconArrow+" "))
	return nil
}
