// Package cache provides byte-oriented caching for analysis results.
//
// Loading a multi-million-edge graph and recomputing heat and distance maps
// takes minutes; the inputs change only when the crawler refreshes its edge
// shards. Cached entries are keyed by content hash of the edge data plus the
// analysis options, so a stale cache can never serve results for different
// input.
//
// Three backends implement [Cache]:
//   - [FileCache]: hashed-file store for CLI usage (the default)
//   - [RedisCache]: shared store for server deployments
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// TTLs for the different entry kinds.
const (
	// TTLGraph is how long a parsed edge map is kept. Edge shards on disk
	// rarely change between crawler runs.
	TTLGraph = 7 * 24 * time.Hour

	// TTLAnalysis is how long computed heat/distance results are kept.
	// Results are pure functions of their key, so this is generous.
	TTLAnalysis = 30 * 24 * time.Hour
)

// Cache is the interface all caching backends implement.
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// AnalysisKeyOpts are the options that distinguish one analysis from another
// over the same graph.
type AnalysisKeyOpts struct {
	Target string `json:"target"`
}

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always produce the same key.
type Keyer interface {
	// GraphKey generates a key for a parsed edge map, from a content hash
	// of the raw edge data.
	GraphKey(edgesHash string) string

	// AnalysisKey generates a key for computed heat/distance results.
	AnalysisKey(graphHash string, opts AnalysisKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// GraphKey generates a key for a parsed edge map.
func (k *DefaultKeyer) GraphKey(edgesHash string) string {
	return "graph:" + edgesHash
}

// AnalysisKey generates a key for analysis results.
func (k *DefaultKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", graphHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
