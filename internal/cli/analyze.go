package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wikiflowhq/wikiflow/pkg/graphio"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	target  string // convergence target
	refresh bool   // bypass the analysis cache
	noCache bool   // disable caching entirely
	out     string // output directory for exported JSON (skip export if empty)
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze <edges-path>",
		Short: "Analyze a first-link graph",
		Long: `Analyze a first-link graph: classify terminals, compute heat for every
article, and measure click distances to the convergence target.

The edges path is a JSON file mapping each title to its first-link successor
("" for articles with no link), or a directory of such shard files.

Examples:
  wikiflow analyze data/edges
  wikiflow analyze data/edges --target Mathematics
  wikiflow analyze data/edges --out results/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "convergence target (default Philosophy)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "directory to export heat/distances/terminals JSON")

	return cmd
}

// runAnalyze executes the pipeline and prints (and optionally exports) the results.
func (c *CLI) runAnalyze(ctx context.Context, edges string, opts analyzeOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	target := c.target(opts.target)

	spinner := newSpinner(ctx, fmt.Sprintf("Analyzing %s...", edges))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		EdgesPath: edges,
		Target:    target,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return err
	}
	spinner.Stop()

	printSuccess("Analyzed %s", edges)
	printStats(result.Stats.NodeCount, result.Stats.TerminalCount, result.CacheInfo.AnalysisHit)
	printDetail("Cycle members: %d", result.Stats.CycleCount)
	printDetail("Reach %s: %d of %d articles", target, result.Stats.ReachedCount, result.Stats.NodeCount)
	printDetail("Run: %s", result.RunID)

	if opts.out != "" {
		if err := exportResult(opts.out, result); err != nil {
			return err
		}
		printNewline()
		printInfo("Exported results")
		printFile(filepath.Join(opts.out, "heat.json"))
		printFile(filepath.Join(opts.out, "distances.json"))
		printFile(filepath.Join(opts.out, "terminals.json"))
	}

	printNewline()
	printNextStep("See the hottest articles", fmt.Sprintf("%s top %s", appName, edges))
	return nil
}

// exportResult writes the three result maps to dir as JSON files.
func exportResult(dir string, result *pipeline.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := graphio.ExportCounts(filepath.Join(dir, "heat.json"), result.Heat); err != nil {
		return err
	}
	if err := graphio.ExportCounts(filepath.Join(dir, "distances.json"), result.Distances); err != nil {
		return err
	}
	return graphio.ExportTitles(filepath.Join(dir, "terminals.json"), result.Terminals)
}
