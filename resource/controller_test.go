package resource

import (
	"context"
	"testing"
	"time"
)

func TestMemoryTracking(t *testing.T) {
	c := NewController(Config{})
	ctx := context.Background()

	if err := c.AcquireMemory(ctx, 100); err != nil {
		t.Fatalf("AcquireMemory failed: %v", err)
	}
	if got := c.MemoryUsage(); got != 100 {
		t.Fatalf("MemoryUsage = %d, want 100", got)
	}

	c.ReleaseMemory(100)
	if got := c.MemoryUsage(); got != 0 {
		t.Fatalf("MemoryUsage after release = %d, want 0", got)
	}
}

func TestMemoryLimitBlocks(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	if err := c.AcquireMemory(context.Background(), 100); err != nil {
		t.Fatalf("AcquireMemory failed: %v", err)
	}

	// Over the limit; must block until the context expires.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := c.AcquireMemory(ctx, 1); err == nil {
		t.Fatal("expected AcquireMemory to fail when over limit")
	}
}

func TestAnalysisSlots(t *testing.T) {
	c := NewController(Config{MaxConcurrentAnalyses: 1})

	if err := c.AcquireAnalysis(context.Background()); err != nil {
		t.Fatalf("AcquireAnalysis failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.AcquireAnalysis(ctx); err == nil {
		t.Fatal("expected second AcquireAnalysis to block")
	}

	c.ReleaseAnalysis()
	if err := c.AcquireAnalysis(context.Background()); err != nil {
		t.Fatalf("AcquireAnalysis after release failed: %v", err)
	}
}

func TestNilControllerIsNoop(t *testing.T) {
	var c *Controller

	if err := c.AcquireMemory(context.Background(), 10); err != nil {
		t.Fatalf("nil AcquireMemory: %v", err)
	}
	c.ReleaseMemory(10)
	if err := c.AcquireIO(context.Background(), 10); err != nil {
		t.Fatalf("nil AcquireIO: %v", err)
	}
	if c.MemoryUsage() != 0 {
		t.Fatal("nil MemoryUsage should be 0")
	}
}
