package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wikiflowhq/wikiflow/pkg/errors"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
)

// defaultTopN is how many articles the top command lists by default.
const defaultTopN = 20

// topCommand creates the top command.
func (c *CLI) topCommand() *cobra.Command {
	var (
		edges   string
		target  string
		n       int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "top [edges-path]",
		Short: "Rank articles by heat",
		Long: `Rank articles by heat: the number of articles whose first-link walk
eventually flows through them.

Examples:
  wikiflow top data/edges
  wikiflow top data/edges -n 50`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := edges
			if len(args) == 1 {
				path = args[0]
			}
			return c.runTop(cmd.Context(), c.edgesPath(path), c.target(target), n, noCache)
		},
	}

	cmd.Flags().StringVarP(&edges, "edges", "e", "", "edge file or shard directory")
	cmd.Flags().StringVarP(&target, "target", "t", "", "convergence target (default Philosophy)")
	cmd.Flags().IntVarP(&n, "count", "n", defaultTopN, "number of articles to list")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runTop(ctx context.Context, edges, target string, n int, noCache bool) error {
	if edges == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no edge source: %s", configCommandHint())
	}
	if n <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "count must be positive, got %d", n)
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

	ranked := rankByHeat(result.Heat, n)

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Top %d articles by heat", len(ranked))))
	for i, entry := range ranked {
		rank := StyleDim.Render(fmt.Sprintf("%3d.", i+1))
		heat := StyleNumber.Render(fmt.Sprintf("%d", entry.heat))
		fmt.Printf("%s %s %s\n", rank, StyleValue.Render(entry.title), StyleDim.Render("·")+" "+heat)
	}
	return nil
}

// heatEntry pairs a title with its heat for ranking.
type heatEntry struct {
	title string
	heat  int
}

// rankByHeat returns the n hottest entries, ties broken lexicographically so
// output is stable across runs.
func rankByHeat(heat map[string]int, n int) []heatEntry {
	entries := make([]heatEntry, 0, len(heat))
	for title, h := range heat {
		entries = append(entries, heatEntry{title: title, heat: h})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].heat != entries[j].heat {
			return entries[i].heat > entries[j].heat
		}
		return entries[i].title < entries[j].title
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
