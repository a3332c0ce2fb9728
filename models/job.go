package models

import "time"

type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Terminal reports whether a status can no longer change.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks one scrape request end-to-end.
// Exactly one of Results (completed) or Error (failed) is set once terminal.
type Job struct {
	ID          string
	OriginURL   string
	Status      JobStatus
	Progress    int // 0..100, non-decreasing while running
	CurrentPage int
	TotalPages  int
	Results     []Listing
	Error       string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
