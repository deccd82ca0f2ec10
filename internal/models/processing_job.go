package models

import "time"

// Recipient is one line of the recipient list.
type Recipient struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	Line   int    `json:"line"`
}

type DocumentResult struct {
	Source   string   `json:"source"`
	Output   string   `json:"output,omitempty"`
	Pages    int      `json:"pages"`
	Rendered int      `json:"rendered"`
	Reused   int      `json:"reused"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// RecipientResult summarises one recipient's job.
type RecipientResult struct {
	JobID     string           `json:"job_id"`
	Recipient Recipient        `json:"recipient"`
	Documents []DocumentResult `json:"documents"`
	Duration  time.Duration    `json:"duration"`
}

func (r *RecipientResult) Failed() int {
	n := 0
	for _, d := range r.Documents {
		if d.Error != "" {
			n++
		}
	}
	return n
}

func (r *RecipientResult) Warnings() int {
	n := 0
	for _, d := range r.Documents {
		n += len(d.Warnings)
	}
	return n
}

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
