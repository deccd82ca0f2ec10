package queue

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Pool runs jobs on a bounded number of goroutines. A failing or panicking
// job never stops the others.
type Pool[T any] struct {
	workers  int
	logger   *zap.Logger
	progress Progress
}

func NewPool[T any](workers int, logger *zap.Logger) *Pool[T] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool[T]{
		workers:  workers,
		logger:   logger,
		progress: nopProgress{},
	}
}

// WithProgress sets the reporter that is told about every finished job.
func (p *Pool[T]) WithProgress(progress Progress) *Pool[T] {
	if progress == nil {
		progress = nopProgress{}
	}
	p.progress = progress
	return p
}

func (p *Pool[T]) Workers() int { return p.workers }

// Run blocks until every job has finished and returns one result per job.
// Jobs that have not started when ctx is cancelled fail with ctx.Err().
func (p *Pool[T]) Run(ctx context.Context, jobs []Job[T]) []Result[T] {
	results := make([]Result[T], len(jobs))
	if len(jobs) == 0 {
		return results
	}

	numWorkers := p.workers
	if len(jobs) < numWorkers {
		numWorkers = len(jobs)
	}

	p.logger.Info("Starting workers",
		zap.Int("workers", numWorkers),
		zap.Int("jobs", len(jobs)),
	)

	queue := make(chan int, len(jobs))
	done := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.startWorker(ctx, workerID, jobs, results, queue, done)
		}(w + 1)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	publish(queue, len(jobs))

	finished := 0
	for i := range done {
		finished++
		p.progress.Done(finished, len(jobs), results[i].Name, results[i].Err)
	}
	p.progress.Close()

	return results
}
