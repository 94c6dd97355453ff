package workers

import "context"

// Workers runs a set of workers as one unit, in registration order.
type Workers struct {
	workers []Worker
}

// New builds a Workers aggregate over the given workers.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker with the shared context.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Func adapts a plain function to the Worker interface.
type Func func(ctx context.Context)

// Run implements [Worker].
func (f Func) Run(ctx context.Context) { f(ctx) }
