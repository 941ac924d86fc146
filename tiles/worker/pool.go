// Package worker runs tasks on a bounded number of goroutines. Tasks are
// started in submission order, so a pool with one worker is a FIFO queue.
package worker

import (
	"context"
	"sync"
	"time"
)

type Pool struct {
	workers chan struct{}
	tasks   chan Task
	quit    chan struct{}
	timeout time.Duration
	onError func(error)

	wg       sync.WaitGroup
	stopOnce sync.Once
}

type Task struct {
	Ctx  context.Context
	Work func(ctx context.Context) error
}

// Option configures a Pool.
type Option func(*Pool)

// WithTimeout bounds each task's context. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Pool) { p.timeout = d }
}

// WithQueueSize sets how many tasks may wait for a worker.
func WithQueueSize(n int) Option {
	return func(p *Pool) { p.tasks = make(chan Task, n) }
}

// WithErrorHandler receives errors returned by tasks.
func WithErrorHandler(fn func(error)) Option {
	return func(p *Pool) { p.onError = fn }
}

func NewPool(maxWorkers int, opts ...Option) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	p := &Pool{
		workers: make(chan struct{}, maxWorkers),
		tasks:   make(chan Task, 100),
		quit:    make(chan struct{}),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(1)
	go p.dispatcher()
	return p
}

func (p *Pool) dispatcher() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case task := <-p.tasks:
			// Block until a worker is free so tasks start in order.
			select {
			case <-p.quit:
				return
			case p.workers <- struct{}{}:
			}
			p.wg.Add(1)
			go p.run(task)
		}
	}
}

func (p *Pool) run(task Task) {
	defer p.wg.Done()
	defer func() { <-p.workers }()

	ctx := task.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if ctx.Err() != nil {
		return
	}
	if err := task.Work(ctx); err != nil && p.onError != nil {
		p.onError(err)
	}
}

// Submit queues task without blocking. It reports false when the queue is
// full or the pool has been shut down.
func (p *Pool) Submit(task Task) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// Shutdown stops dispatching and waits for running tasks to return.
// Queued tasks that have not started are dropped.
func (p *Pool) Shutdown() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
