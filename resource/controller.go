// Package resource bounds what an analysis is allowed to consume.
//
// The pair scan is quadratic in the particle count and its bookkeeping maps
// grow linearly, so embedding applications running many analyses side by side
// can cap memory, concurrency, and snapshot IO through a shared Controller.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentAnalyses is the maximum number of analyses running at once.
	// If 0, defaults to 1.
	MaxConcurrentAnalyses int64

	// IOLimitBytesPerSec is the maximum throughput for snapshot IO.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages shared resources (memory, concurrency, snapshot IO).
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	analysisSem *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentAnalyses <= 0 {
		cfg.MaxConcurrentAnalyses = 1
	}

	c := &Controller{
		cfg:         cfg,
		analysisSem: semaphore.NewWeighted(cfg.MaxConcurrentAnalyses),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it, this blocks until
// memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current managed memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireAnalysis reserves an analysis slot, blocking until one is free.
func (c *Controller) AcquireAnalysis(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.analysisSem.Acquire(ctx, 1)
}

// ReleaseAnalysis releases an analysis slot.
func (c *Controller) ReleaseAnalysis() {
	if c == nil {
		return
	}
	c.analysisSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
