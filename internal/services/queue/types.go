package queue

import (
	"context"
	"time"
)

// Job is one unit of work for the pool.
type Job[T any] struct {
	ID   string
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Result is the outcome of one job. Results are returned in job order.
type Result[T any] struct {
	JobID    string
	Name     string
	Status   string
	Value    T
	Err      error
	WorkerID int
	Duration time.Duration
}

func (r Result[T]) Failed() bool {
	return r.Err != nil
}
