package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/wikiflowhq/wikiflow/internal/api"
	"github.com/wikiflowhq/wikiflow/pkg/cache"
	wferrors "github.com/wikiflowhq/wikiflow/pkg/errors"
	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
	"github.com/wikiflowhq/wikiflow/pkg/graphio"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
	"github.com/wikiflowhq/wikiflow/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	edges   string
	target  string
	addr    string
	refresh bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis as an HTTP API",
		Long: `Analyze a first-link graph and serve the results over HTTP.

The server answers heat, distance, and path lookups against the analyzed
graph. When a Redis address is configured, analysis results are cached
there so restarts and replicas skip recomputation; when a MongoDB URI is
configured, each run is archived and served under /v1/runs.

Examples:
  wikiflow serve --edges data/edges
  wikiflow serve --edges data/edges --addr :9090 --target Mathematics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.edges, "edges", "e", "", "edge file or shard directory")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "convergence target (default Philosophy)")
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	edges := c.edgesPath(opts.edges)
	if edges == "" {
		return wferrors.New(wferrors.ErrCodeInvalidInput, "no edge source: %s", configCommandHint())
	}
	target := c.target(opts.target)

	// Server deployments prefer the shared Redis cache when configured.
	srvCache, err := c.serverCache(ctx)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(srvCache, nil, c.Logger)
	defer runner.Close()

	runs, err := c.runStore(ctx)
	if err != nil {
		return err
	}
	defer runs.Close(ctx)

	tracker := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		EdgesPath: edges,
		Target:    target,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	})
	if err != nil {
		return err
	}
	tracker.done(fmt.Sprintf("Analyzed %d articles", result.Stats.NodeCount))

	if err := runs.Save(ctx, result.RunRecord(target)); err != nil {
		c.Logger.Warn("run not archived", "err", err)
	}

	forward, err := graphio.LoadEdges(edges)
	if err != nil {
		return fmt.Errorf("load edges: %w", err)
	}
	g := funcgraph.New(forward)
	cls := funcgraph.Classify(g)

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(g, cls, result, target, runs, c.Logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr, "target", target)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serverCache returns the Redis cache when configured, the file cache otherwise.
func (c *CLI) serverCache(ctx context.Context) (cache.Cache, error) {
	if c.Config.Redis.Addr == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("using redis cache", "addr", c.Config.Redis.Addr)
	return rc, nil
}

// runStore returns the MongoDB archive when configured, memory otherwise.
func (c *CLI) runStore(ctx context.Context) (store.Store, error) {
	if c.Config.Mongo.URI == "" {
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:      c.Config.Mongo.URI,
		Database: c.Config.Mongo.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.Logger.Info("archiving runs", "database", c.Config.Mongo.Database)
	return ms, nil
}
