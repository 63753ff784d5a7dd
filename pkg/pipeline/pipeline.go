// Package pipeline provides the core analysis pipeline for Wikiflow.
//
// This package implements the complete load → classify → analyze pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read first-link edge shards and build the graph with its
//     reverse index
//  2. Classify: Find terminal nodes (cycle members and dead ends)
//  3. Analyze: Compute heat for every node and BFS distances to the
//     convergence target; the two run concurrently
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    EdgesPath: "data/edges",
//	    Target:    "Philosophy",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Heat["Mathematics"])
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wikiflowhq/wikiflow/pkg/cache"
	"github.com/wikiflowhq/wikiflow/pkg/errors"
	"github.com/wikiflowhq/wikiflow/pkg/store"
)

// DefaultTarget is the convergence target used when none is given, after the
// folk theorem that clicking the first link of any Wikipedia article
// eventually leads to Philosophy.
const DefaultTarget = "Philosophy"

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// EdgesPath is a JSON edge file or a directory of edge shards.
	EdgesPath string `json:"edges_path"`

	// Target is the convergence target for distance computation.
	// Defaults to DefaultTarget.
	Target string `json:"target,omitempty"`

	// Refresh bypasses the cache and recomputes the analysis.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.EdgesPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "edges path is required")
	}
	if o.Target == "" {
		o.Target = DefaultTarget
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// AnalysisKeyOpts returns cache key options for the analysis result.
func (o *Options) AnalysisKeyOpts() cache.AnalysisKeyOpts {
	return cache.AnalysisKeyOpts{Target: o.Target}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// GraphHash is the content hash of the loaded edge map.
	GraphHash string

	// Heat maps every node to the number of nodes whose first-link walk
	// eventually flows through it.
	Heat map[string]int

	// Distances maps each node that reaches the target to its first-link
	// click count. Nodes that never reach the target are absent.
	Distances map[string]int

	// Terminals lists the terminal nodes in lexicographic order.
	Terminals []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	TerminalCount int
	CycleCount    int
	ReachedCount  int
	LoadTime      time.Duration
	AnalyzeTime   time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	AnalysisHit bool // Whether heat/distance results came from cache
}

// RunRecord converts the result into an archivable run summary.
func (r *Result) RunRecord(target string) *store.Run {
	return &store.Run{
		ID:            r.RunID,
		Target:        target,
		NodeCount:     r.Stats.NodeCount,
		EdgeCount:     r.Stats.EdgeCount,
		TerminalCount: r.Stats.TerminalCount,
		CycleCount:    r.Stats.CycleCount,
		ReachedCount:  r.Stats.ReachedCount,
		Duration:      r.Stats.LoadTime + r.Stats.AnalyzeTime,
		CreatedAt:     time.Now().UTC(),
	}
}
