package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wikiflowhq/wikiflow/pkg/errors"
)

// runsCommand creates the runs command for browsing the archive.
func (c *CLI) runsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived analysis runs",
		Long: `List archived analysis runs from the configured MongoDB archive.

Requires mongo.uri in the config file; runs are archived by 'wikiflow serve'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRuns(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to list")

	return cmd
}

func (c *CLI) runRuns(ctx context.Context, limit int) error {
	if c.Config.Mongo.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "no run archive: set mongo.uri in the config file")
	}

	runs, err := c.runStore(ctx)
	if err != nil {
		return err
	}
	defer runs.Close(ctx)

	list, err := runs.List(ctx, limit)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "list runs")
	}
	if len(list) == 0 {
		printInfo("No archived runs")
		return nil
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Last %d runs", len(list))))
	for _, run := range list {
		printKeyValue(run.CreatedAt.Format(time.RFC3339), fmt.Sprintf(
			"%s · %d articles · %d terminals · %d reach %s",
			run.ID, run.NodeCount, run.TerminalCount, run.ReachedCount, run.Target))
	}
	return nil
}
