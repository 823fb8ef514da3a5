package executor

import (
	"fmt"
	"sync"

	errs "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/metrics"
)

// Config holds pool configuration.
type Config struct {
	// WorkerCount is the number of worker goroutines. Must be positive.
	WorkerCount int

	// QueueSize bounds the number of submitted-but-unstarted tasks.
	// Zero means an unbuffered hand-off.
	QueueSize int

	// Name labels this pool's metrics.
	Name string

	// Metrics configures Prometheus instrumentation. Disabled by default.
	Metrics metrics.Config
}

// job pairs the work closure with the action taken when the pool shuts
// down before a worker picks the job up.
type job struct {
	run     func()
	abandon func()
}

// Pool manages a fixed number of worker goroutines executing submitted
// work. Submissions return futures (see Submit); workers settle them.
type Pool struct {
	config Config
	name   string
	reg    *metrics.Registry

	queue      chan job
	shutdownCh chan struct{}
	stopped    chan struct{}

	workerWg     sync.WaitGroup
	shutdownOnce sync.Once

	mu         sync.RWMutex
	isShutdown bool
}

// New creates a pool with the given worker count and queue size.
// It panics on invalid parameters, matching the contract that pool
// construction cannot meaningfully proceed without workers.
func New(workerCount, queueSize int) *Pool {
	return NewWithConfig(Config{WorkerCount: workerCount, QueueSize: queueSize})
}

// NewWithConfig creates a pool with custom configuration.
func NewWithConfig(cfg Config) *Pool {
	if cfg.WorkerCount <= 0 {
		panic(fmt.Sprintf("executor: worker count must be positive, got %d", cfg.WorkerCount))
	}
	if cfg.QueueSize < 0 {
		panic(fmt.Sprintf("executor: queue size cannot be negative, got %d", cfg.QueueSize))
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	p := &Pool{
		config:     cfg,
		name:       cfg.Name,
		reg:        cfg.Metrics.Resolve(),
		queue:      make(chan job, cfg.QueueSize),
		shutdownCh: make(chan struct{}),
		stopped:    make(chan struct{}),
	}

	p.workerWg.Add(cfg.WorkerCount)
	for i := 0; i < cfg.WorkerCount; i++ {
		go p.worker()
	}

	if p.reg != nil {
		p.reg.ExecutorWorkers.WithLabelValues(p.name).Set(float64(cfg.WorkerCount))
	}
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued jobs waiting for a worker.
func (p *Pool) QueueSize() int {
	return len(p.queue)
}

// Shutdown initiates a graceful shutdown: workers finish their current
// job and exit, and futures still sitting in the queue are cancelled.
// The returned channel closes when shutdown completes. Safe to call
// multiple times.
func (p *Pool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		p.mu.Unlock()

		close(p.shutdownCh)

		go func() {
			p.workerWg.Wait()

			// Jobs that never reached a worker: settle their futures
			// as cancelled so waiters are released.
			for {
				select {
				case j := <-p.queue:
					j.abandon()
				default:
					if p.reg != nil {
						p.reg.ExecutorQueued.WithLabelValues(p.name).Set(0)
					}
					close(p.stopped)
					return
				}
			}
		}()
	})

	return p.stopped
}

// enqueue hands a job to the pool, honoring shutdown and ctx.
func (p *Pool) enqueue(j job, cancelled <-chan struct{}) error {
	p.mu.RLock()
	isShutdown := p.isShutdown
	p.mu.RUnlock()

	if isShutdown {
		return fmt.Errorf("cannot submit task: %w", errs.ErrClosed)
	}

	select {
	case p.queue <- j:
		if p.reg != nil {
			p.reg.TasksSubmitted.WithLabelValues(p.name).Inc()
			p.reg.ExecutorQueued.WithLabelValues(p.name).Set(float64(len(p.queue)))
		}
		return nil
	case <-p.shutdownCh:
		return fmt.Errorf("cannot submit task: %w", errs.ErrClosed)
	case <-cancelled:
		return fmt.Errorf("cannot submit task: context canceled")
	}
}

// worker is the main loop for a worker goroutine.
func (p *Pool) worker() {
	defer p.workerWg.Done()

	for {
		// Shutdown wins over queued work; anything left in the queue
		// is abandoned by Shutdown's drain.
		select {
		case <-p.shutdownCh:
			return
		default:
		}

		select {
		case <-p.shutdownCh:
			return
		case j, ok := <-p.queue:
			if !ok {
				return
			}
			if p.reg != nil {
				p.reg.ExecutorQueued.WithLabelValues(p.name).Set(float64(len(p.queue)))
			}
			j.run()
		}
	}
}
