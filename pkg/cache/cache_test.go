package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	h3 := Hash([]byte("world"))

	if h1 != h2 {
		t.Error("Hash() not deterministic for same input")
	}
	if h1 == h3 {
		t.Error("Hash() returned same hash for different inputs")
	}
	if len(h1) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyerGraphKey(t *testing.T) {
	k := NewDefaultKeyer()

	key := k.GraphKey("abc123")
	if key != "graph:abc123" {
		t.Errorf("GraphKey() = %q, want %q", key, "graph:abc123")
	}
}

func TestDefaultKeyerAnalysisKey(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.AnalysisKey("hash1", AnalysisKeyOpts{Target: "Philosophy"})
	k2 := k.AnalysisKey("hash1", AnalysisKeyOpts{Target: "Philosophy"})
	k3 := k.AnalysisKey("hash1", AnalysisKeyOpts{Target: "Mathematics"})
	k4 := k.AnalysisKey("hash2", AnalysisKeyOpts{Target: "Philosophy"})

	if k1 != k2 {
		t.Error("AnalysisKey() not deterministic for same inputs")
	}
	if k1 == k3 {
		t.Error("AnalysisKey() ignored target option")
	}
	if k1 == k4 {
		t.Error("AnalysisKey() ignored graph hash")
	}
	if !strings.HasPrefix(k1, "analysis:") {
		t.Errorf("AnalysisKey() = %q, want analysis: prefix", k1)
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(NewDefaultKeyer(), "enwiki:")

	if got := k.GraphKey("abc"); got != "enwiki:graph:abc" {
		t.Errorf("GraphKey() = %q, want %q", got, "enwiki:graph:abc")
	}
	if got := k.AnalysisKey("abc", AnalysisKeyOpts{Target: "Philosophy"}); !strings.HasPrefix(got, "enwiki:analysis:") {
		t.Errorf("AnalysisKey() = %q, want enwiki:analysis: prefix", got)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "key", []byte("value"), TTLGraph); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("Get() hit = true, want miss from null cache")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), TTLGraph); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("Get() hit = false, want hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("Get() data = %q, want %q", data, "value")
	}
}

func TestFileCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	_, hit, err := c.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("Get() hit = true for missing key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Error("Get() hit = true for expired entry")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, hit, _ := c.Get(ctx, "key")
	if hit {
		t.Error("Get() hit = true after Delete")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() on missing key error = %v", err)
	}
}

func TestRetryable(t *testing.T) {
	base := errors.New("connection reset")

	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	wrapped := Retryable(base)
	if !IsRetryable(wrapped) {
		t.Error("IsRetryable() = false for wrapped error")
	}
	if IsRetryable(base) {
		t.Error("IsRetryable() = true for plain error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is() lost the wrapped error")
	}
}

func TestRetryWithBackoffNonRetryable(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("RetryWithBackoff() error = nil, want permanent error")
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1 for non-retryable error", calls)
	}
}

func TestRetryWithBackoffSucceeds(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("RetryWithBackoff() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryWithBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("transient"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
	}
}
