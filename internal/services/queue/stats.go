package queue

import (
	"time"

	"go.uber.org/multierr"
)

// Stats summarises a finished run.
type Stats struct {
	Total     int           `json:"total"`
	Completed int           `json:"completed"`
	Failed    int           `json:"failed"`
	Busy      time.Duration `json:"busy"` // sum of job durations
}

// Summarize counts the results and combines the errors of failed jobs.
func Summarize[T any](results []Result[T]) (Stats, error) {
	stats := Stats{Total: len(results)}
	var errs error
	for _, r := range results {
		stats.Busy += r.Duration
		if r.Failed() {
			stats.Failed++
			errs = multierr.Append(errs, r.Err)
			continue
		}
		stats.Completed++
	}
	return stats, errs
}
