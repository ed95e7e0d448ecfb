package tui

import "time"

// TaskID identifies a step in the progress display.
type TaskID int

const (
	TaskFetch   TaskID = iota // Fetching register issues
	TaskExtract               // Extracting certificate identifiers
	TaskCompute               // Computing the next identifier and statistics
)

// TaskStatus represents the current status of a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusRunning
	StatusComplete
	StatusError
	StatusSkipped
)

// Event is the interface for all TUI events.
type Event interface {
	isEvent()
}

// TaskEvent is an update to a task's status.
type TaskEvent struct {
	Task     TaskID
	Status   TaskStatus
	Message  string  // optional, e.g. "page 12"
	Count    int     // item count, e.g. issues fetched
	Progress float64 // 0.0 to 1.0
	Error    error
}

func (TaskEvent) isEvent() {}

// DoneEvent signals that all work is complete.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}

// RateLimitEvent reports GitHub API quota exhaustion.
type RateLimitEvent struct {
	Limited bool
	ResetAt time.Time
}

func (RateLimitEvent) isEvent() {}
