package notification

import (
	"context"
	"sync"
)

type Task func(ctx context.Context) error

// Pool runs tasks on a fixed number of workers over a bounded queue.
type Pool struct {
	workers int
	tasks   chan Task
	onError func(error)

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

func NewPool(workers, buffer int, onError func(error)) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
		onError: onError,
	}
}

// TrySubmit queues t without blocking. It reports false when the queue is full or the
// pool is closed.
func (p *Pool) TrySubmit(t Task) bool {
	if p == nil || t == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.tasks <- t:
		return true
	default:
		return false
	}
}

// Run starts the workers. They exit when ctx is done or, after Close, once the queue
// is drained.
func (p *Pool) Run(ctx context.Context) {
	if p == nil {
		return
	}
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if err := t(ctx); err != nil {
						p.onError(err)
					}
				}
			}
		}()
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}
