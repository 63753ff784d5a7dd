package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wikiflowhq/wikiflow/pkg/errors"
)

// ReadEdges decodes a single JSON edge object from r.
//
// The input must be a flat JSON object mapping each title to its successor
// title, with "" marking a title that has no successor. ReadEdges does not
// close r and performs no cross-shard validation - use [LoadEdges] for that.
func ReadEdges(r io.Reader) (map[string]string, error) {
	var edges map[string]string
	if err := json.NewDecoder(r).Decode(&edges); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return edges, nil
}

// LoadEdges reads a forward edge map from path.
//
// If path is a regular file, it is decoded as one edge object. If path is a
// directory, every *.json file in it is decoded and merged, in sorted name
// order so failures are reproducible. Crawler caches shard edges
// alphabetically (edges_a.json ... edges_other.json); any naming works as
// long as the shards are JSON objects.
//
// A title found in two shards with the same successor is tolerated; a title
// with two different successors violates the out-degree <= 1 invariant the
// whole analysis depends on, and LoadEdges rejects it with an
// [errors.ErrCodeInvalidEdges] error naming the title.
func LoadEdges(path string) (map[string]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return loadEdgeFile(path, nil)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}

	var shards []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		shards = append(shards, filepath.Join(path, e.Name()))
	}
	if len(shards) == 0 {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no *.json edge shards in %s", path)
	}
	sort.Strings(shards)

	edges := make(map[string]string)
	for _, shard := range shards {
		if edges, err = loadEdgeFile(shard, edges); err != nil {
			return nil, err
		}
	}
	return edges, nil
}

// loadEdgeFile decodes one shard and merges it into acc. A nil acc starts a
// fresh map, so single-file loads share the merge (and conflict) path.
func loadEdgeFile(path string, acc map[string]string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	shard, err := ReadEdges(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if acc == nil {
		acc = make(map[string]string, len(shard))
	}
	for title, next := range shard {
		if prev, ok := acc[title]; ok && prev != next {
			return nil, errors.New(errors.ErrCodeInvalidEdges,
				"%s: %q maps to both %q and %q (out-degree must be at most 1)",
				path, title, prev, next)
		}
		acc[title] = next
	}
	return acc, nil
}
