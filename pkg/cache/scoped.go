package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces when
// several graphs (or several users of a shared Redis) live in one store.
//
// Example usage:
//
//	// Per-dataset keys when analyzing multiple snapshots
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "enwiki-2025-08:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for a parsed edge map.
func (k *ScopedKeyer) GraphKey(edgesHash string) string {
	return k.prefix + k.inner.GraphKey(edgesHash)
}

// AnalysisKey generates a prefixed key for analysis results.
func (k *ScopedKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(graphHash, opts)
}
