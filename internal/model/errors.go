package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPassInFlight is returned when a pass is requested while another runs.
	ErrPassInFlight = errors.New("reconciliation pass already in progress")
	// ErrNotConfigured is returned when no community has a verified role.
	ErrNotConfigured = errors.New("no community has a verified role")
	// ErrForbidden marks directory edits rejected for lack of permission.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is returned for malformed configuration requests.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FetchError reports a failed roster fetch. The whole pass is abandoned.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch roster from %s (status %d): %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch roster from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ApplyOperation names a directory edit.
type ApplyOperation string

const (
	OpListMembers ApplyOperation = "list_members"
	OpSetNickname ApplyOperation = "set_nickname"
	OpGrantRole   ApplyOperation = "grant_role"
	OpRevokeRole  ApplyOperation = "revoke_role"
)

// ApplyError reports a failed directory edit for a single target.
type ApplyError struct {
	Op          ApplyOperation
	CommunityID CommunityID
	TargetID    string
	StatusCode  int
	Err         error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("failed to %s for %s in community %s: %v", e.Op, e.TargetID, e.CommunityID, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Is maps HTTP-ish status codes onto the package sentinels.
func (e *ApplyError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusForbidden:
		return target == ErrForbidden
	}
	return false
}
