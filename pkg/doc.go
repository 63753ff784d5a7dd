// Package pkg provides the core libraries for Wikiflow first-link analysis.
//
// # Overview
//
// Wikiflow analyzes "first link" graphs: every Wikipedia-style article points
// to at most one successor (the first link in its body), and the resulting
// functional graph has surprising global structure - almost everything flows
// into a few hub articles, and every walk ends in a cycle or a dead end. The
// pkg directory is organized as follows:
//
//  1. [funcgraph] - Domain logic (graph, terminal classification, heat, distances)
//  2. [graphio] - Edge shard loading and result export
//  3. [pipeline] - Orchestration (load → classify → analyze) with caching
//  4. [cache], [store] - Infrastructure (file/Redis cache, Mongo run archive)
//  5. [render] - Graphviz neighborhood export
//
// # Architecture
//
// The typical data flow through Wikiflow:
//
//	Crawler edge shards (JSON)
//	         ↓
//	    [graphio] package (load and merge shards)
//	         ↓
//	    [funcgraph] package (reverse index, terminals, heat, distances)
//	         ↓
//	    [pipeline] package (caching, run records)
//	         ↓
//	    CLI output / HTTP API / DOT export
//
// # Quick Start
//
// Analyze a graph and query it:
//
//	import (
//	    "context"
//	    "github.com/wikiflowhq/wikiflow/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    EdgesPath: "data/edges",
//	    Target:    "Philosophy",
//	})
//	fmt.Println(result.Heat["Mathematics"], result.Distances["Cat"])
//
// # Main Packages
//
// [funcgraph] - The analysis engine. Builds the reverse index from a forward
// edge map, classifies terminal nodes (cycle members and dead ends), computes
// heat (how many articles flow through each node), and BFS click distances to
// a convergence target.
//
// [graphio] - Loading crawler edge shards (single file or directory, with
// out-degree validation) and exporting heat/distance/terminal JSON.
//
// [pipeline] - The load → classify → analyze pipeline shared by CLI and API,
// with content-hash cache keys and run records.
//
// [cache] - Byte-oriented caching with file, Redis, and null backends.
//
// [store] - Run archive with memory and MongoDB backends.
//
// [render] - Bounded neighborhood export as Graphviz DOT or SVG.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hook registry for metrics and tracing backends.
//
// [buildinfo] - ldflags-injected version information.
//
// [funcgraph]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/funcgraph
// [graphio]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/graphio
// [pipeline]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/cache
// [store]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/store
// [render]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/render
// [errors]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/wikiflowhq/wikiflow/pkg/buildinfo
package pkg
