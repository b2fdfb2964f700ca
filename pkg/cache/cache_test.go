package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("null cache should always miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("null cache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("unexpected hit before Set")
	}

	if err := c.Set(ctx, "k", []byte("org data"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if string(data) != "org data" {
		t.Errorf("Get returned %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("hit after Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if f1, f2 := k.ForestKey("abc"), k.ForestKey("abc"); f1 != f2 {
		t.Error("ForestKey should be deterministic")
	}
	if f1, f2 := k.ForestKey("abc"), k.ForestKey("abd"); f1 == f2 {
		t.Error("different data hashes should produce different forest keys")
	}

	lk1 := k.LayoutKey("fh", LayoutKeyOpts{Kind: "tree", MaxDepth: 3})
	lk2 := k.LayoutKey("fh", LayoutKeyOpts{Kind: "radial", MaxDepth: 3})
	if lk1 == lk2 {
		t.Error("different layout kinds should produce different keys")
	}
	lk3 := k.LayoutKey("fh", LayoutKeyOpts{Kind: "tree", MaxDepth: 3, Department: "Sales"})
	if lk1 == lk3 {
		t.Error("scope fields should participate in layout keys")
	}

	ak1 := k.ArtifactKey("lh", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("lh", ArtifactKeyOpts{Format: "dot"})
	if ak1 == ak2 {
		t.Error("different formats should produce different artifact keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "ds:42:")

	key := scoped.ForestKey("abc")
	if key[:6] != "ds:42:" {
		t.Errorf("scoped key not prefixed: %s", key)
	}
	if key[6:] != inner.ForestKey("abc") {
		t.Errorf("scoped key body diverges from inner: %s", key)
	}

	lk := scoped.LayoutKey("fh", LayoutKeyOpts{Kind: "wedge"})
	if lk[:6] != "ds:42:" {
		t.Errorf("scoped layout key not prefixed: %s", lk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	want := "p:" + NewDefaultKeyer().ForestKey("x")
	if got := scoped.ForestKey("x"); got != want {
		t.Errorf("ForestKey with nil inner = %s, want %s", got, want)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrCacheMiss)
	if err == nil {
		t.Fatal("Retryable should wrap the error")
	}
	if !IsRetryable(err) {
		t.Error("wrapped error should be retryable")
	}
	if err.Error() != ErrCacheMiss.Error() {
		t.Errorf("message not preserved: %s", err.Error())
	}
	if IsRetryable(ErrCacheMiss) {
		t.Error("unwrapped error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("first-try success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrCacheMiss
	})
	if err != ErrCacheMiss || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrCacheMiss)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry once: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrCacheMiss)
	})
	if err != context.Canceled {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
