package cache

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"
)

// Integration test; set SKETCHIFY_REDIS_ADDR to run it.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("SKETCHIFY_REDIS_ADDR")
	if addr == "" {
		t.Skip("SKETCHIFY_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "sketchify-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	t.Cleanup(func() { _, _ = c.Clear(ctx) })

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = (hit %v, err %v), want miss", hit, err)
	}

	want := []byte("sketch")
	if err := c.Set(ctx, "k", want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || !bytes.Equal(got, want) {
		t.Errorf("Get = (%q, %v, %v), want (%q, true, nil)", got, hit, err, want)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 1 {
		t.Errorf("Clear = %d, want 1", n)
	}
}
