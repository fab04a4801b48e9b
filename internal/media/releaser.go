package media

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/frahmantamala/employee-directory/internal/core/events"
)

var ErrReleaserStopped = errors.New("media releaser is shut down")

// Remover is the part of a store the releaser needs.
type Remover interface {
	Remove(relPath string) error
}

type ReleaseJob struct {
	FilePath string
	Source   string
}

type Worker struct {
	ID         int
	WorkerPool chan chan ReleaseJob
	JobChannel chan ReleaseJob
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan ReleaseJob, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan ReleaseJob),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(ReleaseJob)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-ctx.Done():
				w.Logger.Debug("release worker shutting down", "worker_id", w.ID)
				return
			}

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("release worker processing job", "worker_id", w.ID, "file_path", job.FilePath)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("release worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

type ReleaserConfig struct {
	MaxWorkers   int
	JobQueueSize int
}

// Releaser deletes stored files in the background. Failures are logged and
// never reported back to the caller that queued the file.
type Releaser struct {
	store  Remover
	logger *slog.Logger

	jobQueue   chan ReleaseJob
	workerPool chan chan ReleaseJob
	maxWorkers int

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending sync.WaitGroup
	once    sync.Once

	mu      sync.RWMutex
	stopped bool
}

func NewReleaser(store Remover, config ReleaserConfig, logger *slog.Logger) *Releaser {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := config.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	jobQueueSize := config.JobQueueSize
	if jobQueueSize <= 0 {
		jobQueueSize = 100
	}

	r := &Releaser{
		store:      store,
		logger:     logger,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan ReleaseJob, jobQueueSize),
		workerPool: make(chan chan ReleaseJob, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	r.startWorkerPool()

	return r
}

func (r *Releaser) startWorkerPool() {
	r.once.Do(func() {
		for i := 0; i < r.maxWorkers; i++ {
			worker := NewWorker(i, r.workerPool, r.logger)
			worker.Start(r.ctx, &r.wg, r.process)
		}

		r.wg.Add(1)
		go r.dispatch()

		r.logger.Info("media release worker pool started",
			"max_workers", r.maxWorkers,
			"queue_size", cap(r.jobQueue))
	})
}

func (r *Releaser) dispatch() {
	defer r.wg.Done()

	for {
		select {
		case job := <-r.jobQueue:
			select {
			case jobChannel := <-r.workerPool:
				jobChannel <- job
			case <-r.ctx.Done():
				r.pending.Done()
				r.logger.Info("release dispatcher shutting down")
				return
			}
		case <-r.ctx.Done():
			r.logger.Info("release dispatcher shutting down")
			return
		}
	}
}

func (r *Releaser) process(job ReleaseJob) {
	defer r.pending.Done()

	if err := r.store.Remove(job.FilePath); err != nil {
		r.logger.Error("failed to release media file",
			"file_path", job.FilePath,
			"source", job.Source,
			"error", err)
		return
	}
	r.logger.Info("media file released", "file_path", job.FilePath, "source", job.Source)
}

// Release queues files for deletion. When the queue is full the file is
// skipped and left for the media sweep.
func (r *Releaser) Release(source string, filePaths ...string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return ErrReleaserStopped
	}

	for _, p := range filePaths {
		if p == "" {
			continue
		}
		r.pending.Add(1)
		select {
		case r.jobQueue <- ReleaseJob{FilePath: p, Source: source}:
		default:
			r.pending.Done()
			r.logger.Warn("media release queue full, file left for sweep",
				"file_path", p,
				"queue_capacity", cap(r.jobQueue))
		}
	}
	return nil
}

// HandleEvent releases the files freed by a directory event.
func (r *Releaser) HandleEvent(_ context.Context, event events.Event) error {
	paths := events.ReleasablePaths(event)
	if len(paths) == 0 {
		return nil
	}
	return r.Release(event.EventType(), paths...)
}

func (r *Releaser) Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeEmployeeDeleted, r.HandleEvent)
	bus.Subscribe(events.EventTypeEmployeeImageDeleted, r.HandleEvent)
}

// Wait blocks until every queued file has been processed.
func (r *Releaser) Wait() {
	r.pending.Wait()
}

// Shutdown stops accepting files, drains the queue and stops the workers.
func (r *Releaser) Shutdown() {
	r.logger.Info("shutting down media releaser")

	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.pending.Wait()
	r.cancel()
	r.wg.Wait()

	r.logger.Info("media releaser shutdown complete")
}
