package queue

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/phambaophuc/pdf-watermark/internal/models"
	"go.uber.org/zap"
)

// runJob executes one job, turning a panic into a JobError.
func runJob[T any](ctx context.Context, workerID int, job Job[T], logger *zap.Logger) (res Result[T]) {
	res = Result[T]{
		JobID:    job.ID,
		Name:     job.Name,
		Status:   models.StatusProcessing,
		WorkerID: workerID,
	}
	logger = logger.With(zap.String("job_id", job.ID), zap.String("job", job.Name))

	if err := ctx.Err(); err != nil {
		res.Status = models.StatusFailed
		res.Err = &models.JobError{Recipient: job.Name, Err: err}
		logger.Warn("Job not started", zap.Error(err))
		return res
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = &models.JobError{Recipient: job.Name, Err: fmt.Errorf("panic: %v", r)}
			logger.Error("Job panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
		res.Duration = time.Since(start)
		if res.Err != nil {
			res.Status = models.StatusFailed
		} else {
			res.Status = models.StatusCompleted
		}
	}()

	logger.Info("Processing job")

	value, err := job.Run(ctx)
	res.Value = value
	if err != nil {
		res.Err = &models.JobError{Recipient: job.Name, Err: err}
		logger.Error("Job processing failed", zap.Error(err))
		return res
	}

	logger.Info("Job completed successfully", zap.Duration("duration", time.Since(start)))
	return res
}
