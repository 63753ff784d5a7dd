package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wikiflowhq/wikiflow/pkg/cache"
	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
	"github.com/wikiflowhq/wikiflow/pkg/graphio"
	"github.com/wikiflowhq/wikiflow/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// analysisPayload is the cached form of a completed analysis. The maps use
// encoding/json, which sorts keys, so identical results serialize identically.
type analysisPayload struct {
	Heat      map[string]int `json:"heat"`
	Distances map[string]int `json:"distances"`
	Terminals []string       `json:"terminals"`
}

// Execute runs the complete load → classify → analyze pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Analysis().OnLoadStart(ctx, opts.EdgesPath)
	edges, err := graphio.LoadEdges(opts.EdgesPath)
	if err != nil {
		observability.Analysis().OnLoadComplete(ctx, opts.EdgesPath, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load edges: %w", err)
	}

	g := funcgraph.New(edges)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	observability.Analysis().OnLoadComplete(ctx, opts.EdgesPath, g.NodeCount(), result.Stats.LoadTime, nil)

	// Hash the edge map for cache keys and API responses. encoding/json
	// sorts map keys, so the hash depends only on content.
	if edgeData, err := json.Marshal(edges); err == nil {
		result.GraphHash = cache.Hash(edgeData)
	}

	opts.Logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stages 2+3: Classify and analyze, with caching
	analyzeStart := time.Now()
	payload, hit, err := r.analyzeWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Heat = payload.Heat
	result.Distances = payload.Distances
	result.Terminals = payload.Terminals
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.TerminalCount = len(payload.Terminals)
	result.Stats.CycleCount = cycleCount(g, payload.Terminals)
	result.Stats.ReachedCount = len(payload.Distances)
	result.CacheInfo.AnalysisHit = hit

	opts.Logger.Info("analyzed graph",
		"target", opts.Target,
		"terminals", result.Stats.TerminalCount,
		"reached", result.Stats.ReachedCount,
		"cache_hit", hit,
		"duration", result.Stats.AnalyzeTime)

	return result, nil
}

// analyzeWithCacheInfo classifies the graph and computes heat and distances,
// consulting the cache first and reporting whether it hit.
func (r *Runner) analyzeWithCacheInfo(ctx context.Context, g *funcgraph.Graph, graphHash string, opts Options) (*analysisPayload, bool, error) {
	cacheKey := r.Keyer.AnalysisKey(graphHash, opts.AnalysisKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh && graphHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var payload analysisPayload
			if err := json.Unmarshal(data, &payload); err == nil {
				observability.Cache().OnCacheHit(ctx, "analysis")
				return &payload, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "analysis")
	}

	// Classify
	classifyStart := time.Now()
	cls := funcgraph.Classify(g)
	observability.Analysis().OnClassifyComplete(ctx, cls.TerminalCount(), cls.CycleCount(), time.Since(classifyStart))

	// Heat and distances are independent once classification is done, so
	// they run concurrently and join before the result is assembled.
	payload := &analysisPayload{Terminals: cls.Terminals()}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		payload.Heat = funcgraph.Heat(g, cls)
		observability.Analysis().OnHeatComplete(ctx, len(payload.Heat), time.Since(start))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		payload.Distances = funcgraph.Distances(g, opts.Target)
		observability.Analysis().OnDistanceComplete(ctx, opts.Target, len(payload.Distances), time.Since(start))
	}()
	wg.Wait()

	// Cache the result
	if graphHash != "" {
		if data, err := json.Marshal(payload); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLAnalysis); err == nil {
				observability.Cache().OnCacheSet(ctx, "analysis", len(data))
			}
		}
	}

	return payload, false, nil
}

// cycleCount recounts cycle membership from the terminal list by walking one
// successor step: a terminal whose successor is also terminal sits on a cycle.
// Used when results come from cache and the Classification is gone.
func cycleCount(g *funcgraph.Graph, terminals []string) int {
	terminal := make(map[string]struct{}, len(terminals))
	for _, t := range terminals {
		terminal[t] = struct{}{}
	}
	count := 0
	for _, t := range terminals {
		next, ok := g.Next(t)
		if !ok {
			continue
		}
		if _, onCycle := terminal[next]; onCycle || next == t {
			count++
		}
	}
	return count
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
