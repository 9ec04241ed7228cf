package work

import (
	"context"
	"errors"
	"sync"
)

// Executor is a unit of work the pool runs to completion.
type Executor interface {
	Execute(ctx context.Context) error
	OnError(error)
}

// Pool runs queued Executors on a fixed number of workers.
type Pool struct {
	numWorkers int
	tasks      chan Executor
	start      sync.Once
	stop       sync.Once
	mu         sync.Mutex
	closed     bool
	wg         sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue size.
func NewPool(numWorkers int, taskChannelSize int) (*Pool, error) {
	if numWorkers <= 0 || taskChannelSize <= 0 {
		return nil, errors.New("invalid parameters: number of workers and tasks must be more than zero")
	}
	return &Pool{
		numWorkers: numWorkers,
		tasks:      make(chan Executor, taskChannelSize),
	}, nil
}

// Start launches the workers. Safe to call once; later calls are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.start.Do(func() {
		for i := 0; i < p.numWorkers; i++ {
			p.wg.Add(1)
			go p.worker(ctx)
		}
	})
}

// Submit queues a task. Returns false once the pool is stopped.
func (p *Pool) Submit(task Executor) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Stop closes the queue and blocks until the queued tasks finish.
func (p *Pool) Stop() {
	p.stop.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
		p.wg.Wait()
	})
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			if err := task.Execute(ctx); err != nil {
				task.OnError(err)
			}
		}
	}
}
