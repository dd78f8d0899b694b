// Package tasks provides the background task pool for post-session work.
package tasks

import (
	"fmt"
	"log"

	"github.com/panjf2000/ants/v2"
)

// Pool runs fire-and-forget background tasks on a bounded worker pool.
// Task failures are reported to the log, never discarded silently.
type Pool struct {
	pool *ants.Pool
}

// NewPool creates a pool with the given number of workers.
func NewPool(size int) (*Pool, error) {
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	return &Pool{pool: p}, nil
}

// Submit schedules fn without waiting for it to run. If the pool cannot
// accept the task it falls back to a plain goroutine, so scheduled work is
// never lost.
func (p *Pool) Submit(name string, fn func() error) {
	run := func() {
		if err := fn(); err != nil {
			log.Printf("background task %s failed: %v", name, err)
		}
	}

	if err := p.pool.Submit(run); err != nil {
		log.Printf("worker pool rejected task %s, running on its own goroutine: %v", name, err)
		go run()
	}
}

// Release stops the pool. Already-running tasks finish; no new tasks are
// accepted.
func (p *Pool) Release() {
	p.pool.Release()
}
