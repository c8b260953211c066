package model

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
)

// Positions of the roster columns within a row.
const (
	ColumnNickname = 0
	ColumnHandle   = 1
	ColumnEmail    = 2
)

// Row is one positional roster row: [displayName, identityHandle, email].
type Row []string

// RosterSource supplies roster rows on demand.
type RosterSource interface {
	Fetch(ctx context.Context) ([]Row, error)
}

// RosterRecord is one self-reported identity from the roster.
type RosterRecord struct {
	Handle      string
	RawNickname string
	Email       string
}

var handleFolder = cases.Fold()

// NormalizeHandle maps a roster or directory handle onto the shared key
// scheme: trimmed, case-folded, with the legacy "#0" discriminator removed.
func NormalizeHandle(handle string) string {
	h := strings.TrimSpace(handle)
	h = strings.TrimSuffix(h, "#0")
	return handleFolder.String(h)
}
