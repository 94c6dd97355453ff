package service

import (
	"context"
	"sync"
	"time"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/store"
	"github.com/kevindrums92/baselineapp/models"
)

// defaultRetryInterval is used when Start receives a non-positive interval.
const defaultRetryInterval = 30 * time.Second

// retryJob periodically re-attempts delivery of the pending buffer while
// the engine sits in the error status. Offline recovery is not its job:
// the connectivity checker's online edge drains that case.
type retryJob struct {
	engine  SyncEngine
	pending store.PendingRepository
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRetryJob creates a retry job that drains the pending buffer on a
// ticker. The job is idle until Start is called.
func NewRetryJob(engine SyncEngine, storages *store.Storages, log *logger.Logger) RetryJob {
	return &retryJob{engine: engine, pending: storages.Pending, logger: log}
}

// Start implements [RetryJob]. It stops any previously running job, then
// launches a background goroutine attempting a drain every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *retryJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// tick re-attempts delivery when the engine is errored and a buffered
// change exists. Status offline is deliberately excluded: the online
// transition has its own drain trigger, and double-draining would race it.
func (j *retryJob) tick(ctx context.Context) {
	if j.engine.Mode() != models.ModeCloud || !j.engine.Initialized() {
		return
	}
	if j.engine.Status() != models.StatusError {
		return
	}
	pending, err := j.pending.Get(ctx)
	if err != nil {
		return
	}

	j.logger.Debug().Str("func", "retryJob.tick").Msg("re-attempting buffered push")
	j.engine.Push(ctx, *pending)
}

// Stop implements [RetryJob]. It cancels the background goroutine and
// blocks until it has fully exited. Safe to call when the job is not
// running.
func (j *retryJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
