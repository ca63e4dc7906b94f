// ABOUTME: Small worker pool for parallel per-file work
// ABOUTME: Provides a submit-and-wait pattern used by the library scanner

// Package pool provides a fixed-size worker pool for batches of
// independent tasks, sized to the machine by default.
package pool

import (
	"runtime"
	"sync"
)

// WorkerPool runs submitted tasks on a fixed set of goroutines.
type WorkerPool struct {
	taskChan chan func()
	workerWg sync.WaitGroup // tracks worker goroutines lifetime
	taskWg   sync.WaitGroup // tracks submitted tasks completion
}

// New creates a worker pool. A non-positive workers count means one
// worker per CPU. The queue size bounds how many tasks can be pending
// before Submit blocks.
func New(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		taskChan: make(chan func(), queue),
	}

	for i := 0; i < workers; i++ {
		pool.workerWg.Add(1)

		go func() {
			defer pool.workerWg.Done()

			for task := range pool.taskChan {
				task()
				pool.taskWg.Done()
			}
		}()
	}

	return pool
}

// Submit adds a task to the pool, blocking while the queue is full.
func (p *WorkerPool) Submit(task func()) {
	p.taskWg.Add(1)
	p.taskChan <- task
}

// Wait blocks until all submitted tasks have completed.
func (p *WorkerPool) Wait() {
	p.taskWg.Wait()
}

// Close shuts down the pool and waits for the workers to exit.
func (p *WorkerPool) Close() {
	close(p.taskChan)
	p.workerWg.Wait()
}
