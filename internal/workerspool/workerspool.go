// Copyright 2026 The AccelRand Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool provides the pool of goroutines that plays the role of
// the device's parallel execution units: sampling kernels split their output
// into blocks and run one logical worker per block.
package workerspool

import (
	"runtime"
	"sync"
)

// Pool of workers with a soft limit on parallelism.
//
// The zero value is not usable; create one with New.
type Pool struct {
	// maxParallelism is a soft target on the limit of parallel work to do.
	maxParallelism int

	mu         sync.Mutex
	cond       sync.Cond // Signaled whenever numRunning is decreased.
	numRunning int
}

// New returns a new Pool of workers with the default parallelism
// (runtime.NumCPU()).
func New() *Pool {
	p := &Pool{maxParallelism: runtime.NumCPU()}
	p.cond = sync.Cond{L: &p.mu}
	return p
}

// MaxParallelism is the soft target for parallelism.
// 0 disables parallelism (everything runs inline); -1 means unlimited.
func (p *Pool) MaxParallelism() int { return p.maxParallelism }

// SetMaxParallelism sets the parallelism target.
//
// Only change it while no workers are running, otherwise the behavior is
// undefined. It returns the pool to allow chaining.
func (p *Pool) SetMaxParallelism(maxParallelism int) *Pool {
	p.maxParallelism = maxParallelism
	return p
}

// IsEnabled returns whether parallelism is enabled (MaxParallelism != 0).
func (p *Pool) IsEnabled() bool { return p.maxParallelism != 0 }

// lockedIsFull returns whether all available workers are in use.
// It must be called with p.mu held.
func (p *Pool) lockedIsFull() bool {
	if p.maxParallelism < 0 {
		return false
	}
	return p.numRunning >= p.maxParallelism
}

// WaitToStart blocks until a worker is available and then runs task on a
// separate goroutine.
//
// If parallelism is disabled the task runs inline, and WaitToStart returns
// only when it finishes.
func (p *Pool) WaitToStart(task func()) {
	if p.maxParallelism < 0 {
		go task()
		return
	} else if p.maxParallelism == 0 {
		task()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for p.lockedIsFull() {
		p.cond.Wait()
	}
	p.numRunning++
	go func() {
		task()
		p.mu.Lock()
		p.numRunning--
		p.cond.Signal()
		p.mu.Unlock()
	}()
}

// minBlockSize is the smallest per-worker block of elements worth scheduling:
// below this the goroutine overhead dominates the sampling work.
const minBlockSize = 512

// ForBlocks partitions [0, n) into contiguous blocks and runs fn(start, end)
// for each block across the pool's workers, returning after every block
// completed. Blocks never overlap and jointly cover [0, n) exactly once.
//
// It is the scheduling primitive behind every sampling kernel: fn must be
// safe to run concurrently with itself on disjoint ranges.
func (p *Pool) ForBlocks(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if !p.IsEnabled() || n <= minBlockSize {
		fn(0, n)
		return
	}

	numBlocks := (n + minBlockSize - 1) / minBlockSize
	if p.maxParallelism > 0 && numBlocks > 2*p.maxParallelism {
		numBlocks = 2 * p.maxParallelism
	}
	blockSize := (n + numBlocks - 1) / numBlocks

	var wg sync.WaitGroup
	for start := 0; start < n; start += blockSize {
		end := min(start+blockSize, n)
		wg.Add(1)
		p.WaitToStart(func() {
			defer wg.Done()
			fn(start, end)
		})
	}
	wg.Wait()
}
