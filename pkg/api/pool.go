package api

import (
	"context"
	"sync/atomic"
	"time"
)

// WorkerPool bounds how much concurrent work the server hands to the
// analysis core at once, with separate limits for the two cost
// profiles the handlers exercise: Evaluate/Move are a handful of Eval
// calls and return in microseconds, while Rollout plays out all 1296
// dice sequences and can run for seconds. Letting an unbounded flood of
// rollout requests compete for CPU with cheap evaluate/move requests
// would starve the fast path, so each profile gets its own semaphore.
type WorkerPool struct {
	analysisSem    chan struct{} // Semaphore for Evaluate/Move requests
	rolloutSem     chan struct{} // Semaphore for Rollout requests
	queuedAnalysis int64         // Number of queued Evaluate/Move requests
	queuedRollout  int64         // Number of queued Rollout requests
	activeAnalysis int64         // Number of in-flight Evaluate/Move requests
	activeRollout  int64         // Number of in-flight Rollout requests
	totalAnalysis  int64         // Total Evaluate/Move requests completed
	totalRollout   int64         // Total Rollout requests completed
}

// PoolConfig configures the worker pool's two concurrency ceilings.
type PoolConfig struct {
	MaxAnalysisWorkers int // Max concurrent Evaluate/Move requests (default: 100)
	MaxRolloutWorkers  int // Max concurrent Rollout requests (default: 4)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxAnalysisWorkers: 100,
		MaxRolloutWorkers:  4,
	}
}

// NewWorkerPool creates a new worker pool with the given configuration.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	if config.MaxAnalysisWorkers <= 0 {
		config.MaxAnalysisWorkers = 100
	}
	if config.MaxRolloutWorkers <= 0 {
		config.MaxRolloutWorkers = 4
	}

	return &WorkerPool{
		analysisSem: make(chan struct{}, config.MaxAnalysisWorkers),
		rolloutSem:  make(chan struct{}, config.MaxRolloutWorkers),
	}
}

// AcquireAnalysis acquires a slot for an Evaluate or Move request.
// Returns an error if the context is cancelled while waiting.
func (p *WorkerPool) AcquireAnalysis(ctx context.Context) error {
	atomic.AddInt64(&p.queuedAnalysis, 1)
	defer atomic.AddInt64(&p.queuedAnalysis, -1)

	select {
	case p.analysisSem <- struct{}{}:
		atomic.AddInt64(&p.activeAnalysis, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseAnalysis releases an Evaluate/Move slot.
func (p *WorkerPool) ReleaseAnalysis() {
	atomic.AddInt64(&p.activeAnalysis, -1)
	atomic.AddInt64(&p.totalAnalysis, 1)
	<-p.analysisSem
}

// AcquireRollout acquires a slot for a Rollout (or streamed duel) request.
// Returns an error if the context is cancelled while waiting.
func (p *WorkerPool) AcquireRollout(ctx context.Context) error {
	atomic.AddInt64(&p.queuedRollout, 1)
	defer atomic.AddInt64(&p.queuedRollout, -1)

	select {
	case p.rolloutSem <- struct{}{}:
		atomic.AddInt64(&p.activeRollout, 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseRollout releases a Rollout slot.
func (p *WorkerPool) ReleaseRollout() {
	atomic.AddInt64(&p.activeRollout, -1)
	atomic.AddInt64(&p.totalRollout, 1)
	<-p.rolloutSem
}

// PoolStats reports current worker pool statistics.
type PoolStats struct {
	ActiveAnalysis int64 `json:"active_analysis"`
	ActiveRollout  int64 `json:"active_rollout"`
	QueuedAnalysis int64 `json:"queued_analysis"`
	QueuedRollout  int64 `json:"queued_rollout"`
	TotalAnalysis  int64 `json:"total_analysis"`
	TotalRollout   int64 `json:"total_rollout"`
	MaxAnalysis    int   `json:"max_analysis"`
	MaxRollout     int   `json:"max_rollout"`
}

// Stats returns current pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveAnalysis: atomic.LoadInt64(&p.activeAnalysis),
		ActiveRollout:  atomic.LoadInt64(&p.activeRollout),
		QueuedAnalysis: atomic.LoadInt64(&p.queuedAnalysis),
		QueuedRollout:  atomic.LoadInt64(&p.queuedRollout),
		TotalAnalysis:  atomic.LoadInt64(&p.totalAnalysis),
		TotalRollout:   atomic.LoadInt64(&p.totalRollout),
		MaxAnalysis:    cap(p.analysisSem),
		MaxRollout:     cap(p.rolloutSem),
	}
}

// TryAcquireAnalysis tries to acquire an Evaluate/Move slot without blocking.
// Returns true if acquired, false if the pool is full.
func (p *WorkerPool) TryAcquireAnalysis() bool {
	select {
	case p.analysisSem <- struct{}{}:
		atomic.AddInt64(&p.activeAnalysis, 1)
		return true
	default:
		return false
	}
}

// TryAcquireRollout tries to acquire a Rollout slot without blocking.
// Returns true if acquired, false if the pool is full.
func (p *WorkerPool) TryAcquireRollout() bool {
	select {
	case p.rolloutSem <- struct{}{}:
		atomic.AddInt64(&p.activeRollout, 1)
		return true
	default:
		return false
	}
}

// AcquireRolloutWithTimeout tries to acquire a Rollout slot, giving up
// after timeout.
func (p *WorkerPool) AcquireRolloutWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.AcquireRollout(ctx)
}
