package model

import (
	"time"

	"github.com/google/uuid"
)

// CommunityReport summarizes one community within a pass.
type CommunityReport struct {
	CommunityID CommunityID
	Matched     int
	Skipped     int
	Failed      int
	Updated     int
	// Err is set when the member list could not be resolved.
	Err    error
	Errors []error
}

// RunReport summarizes one reconciliation pass.
type RunReport struct {
	ID          uuid.UUID
	StartedAt   time.Time
	FinishedAt  time.Time
	Records     int
	FetchErr    error
	Communities []CommunityReport
}

// Totals sums the per-community counters.
func (r RunReport) Totals() (matched, skipped, failed int) {
	for _, c := range r.Communities {
		matched += c.Matched
		skipped += c.Skipped
		failed += c.Failed
	}
	return matched, skipped, failed
}

// Community returns the report for a community, if it was visited.
func (r RunReport) Community(id CommunityID) (CommunityReport, bool) {
	for _, c := range r.Communities {
		if c.CommunityID == id {
			return c, true
		}
	}
	return CommunityReport{}, false
}
