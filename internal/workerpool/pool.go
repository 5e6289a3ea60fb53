// Package workerpool provides a small fixed-size goroutine pool used by
// cmd/provebatch to run many independent proof attempts concurrently.
// It has a fixed worker count, a buffered task channel, and a
// shutdown-once shape, with no dynamic scaling, deadlock detection, or
// statistics — a batch of independent Solver
// runs needs none of that, since there is no shared search state for a
// stuck worker to deadlock against (SPEC_FULL.md §3.2).
package workerpool

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// ErrPoolShutdown is returned by Submit once Shutdown has been called.
var ErrPoolShutdown = errors.New("workerpool: pool is shut down")

// Pool runs submitted tasks across a fixed number of worker goroutines.
type Pool struct {
	taskChan     chan func()
	shutdownChan chan struct{}
	workerWg     sync.WaitGroup
	once         sync.Once
	size         int
}

// New creates a Pool with size workers. A non-positive size defaults to
// runtime.NumCPU().
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		taskChan:     make(chan func(), size*2),
		shutdownChan: make(chan struct{}),
		size:         size,
	}

	for i := 0; i < size; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()
	for {
		select {
		case task, ok := <-p.taskChan:
			if !ok {
				return
			}
			task()
		case <-p.shutdownChan:
			// Run tasks that were accepted before shutdown, then exit.
			for {
				select {
				case task := <-p.taskChan:
					task()
				default:
					return
				}
			}
		}
	}
}

// Submit enqueues task, blocking until a worker slot is free, ctx is
// cancelled, or the pool has been shut down.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	select {
	case <-p.shutdownChan:
		return ErrPoolShutdown
	default:
	}

	select {
	case p.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.shutdownChan:
		return ErrPoolShutdown
	}
}

// Size returns the number of worker goroutines in the pool.
func (p *Pool) Size() int {
	return p.size
}

// Shutdown stops accepting new tasks and waits for the workers to finish
// every task already accepted by Submit. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		p.workerWg.Wait()
	})
}
