package model

import "time"

// RunState is the scheduler state that survives restarts.
type RunState struct {
	Enabled         bool       `json:"enabled"`
	IntervalSeconds int        `json:"interval_seconds"`
	LastFetch       *time.Time `json:"last_fetch,omitempty"`
}

// SchedulerStatus is a point-in-time view of the scheduler.
type SchedulerStatus struct {
	Running    bool
	Interval   time.Duration
	LastFetch  *time.Time
	LastReport *RunReport
}
