package model

import "context"

// Info is the informational payload sent to new members and on request.
type Info struct {
	Title        string
	Description  string
	Footer       string
	ThumbnailURL string
	Color        int
}

// InfoProvider supplies the current info payload.
type InfoProvider interface {
	Info(ctx context.Context) (Info, error)
}
