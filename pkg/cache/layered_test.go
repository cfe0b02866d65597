package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLayeredGetBackfillsL1(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2, WithLayeredTTL(time.Minute))
	defer lc.Close()

	if err := l2.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("l2 set: %v", err)
	}

	var got string
	if err := lc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("layered get: %v", err)
	}
	if got != "v" {
		t.Fatalf("got %q, want v", got)
	}

	if err := lc.memCache.Get(ctx, "k", &got); err != nil {
		t.Fatalf("entry not backfilled into L1: %v", err)
	}
}

func TestLayeredBackfillHonorsTTL(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2, WithLayeredTTL(30*time.Millisecond))
	defer lc.Close()

	if err := l2.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("l2 set: %v", err)
	}

	var got string
	if err := lc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("layered get: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if err := lc.memCache.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("L1 entry outlived the configured TTL: err = %v", err)
	}
	// Still served from L2.
	if err := lc.Get(ctx, "k", &got); err != nil || got != "v" {
		t.Fatalf("layered get after L1 expiry: %v (got %q)", err, got)
	}
}
