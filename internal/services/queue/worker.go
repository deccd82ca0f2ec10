package queue

import (
	"context"

	"go.uber.org/zap"
)

func (p *Pool[T]) startWorker(ctx context.Context, workerID int, jobs []Job[T], results []Result[T], queue <-chan int, done chan<- int) {
	logger := p.logger.With(zap.Int("worker_id", workerID))
	logger.Debug("Worker started")

	for i := range queue {
		results[i] = runJob(ctx, workerID, jobs[i], logger)
		done <- i
	}

	logger.Debug("Worker stopping")
}
