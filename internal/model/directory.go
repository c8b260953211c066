package model

import "context"

// Member is a live community member as seen by the directory.
type Member struct {
	ID       MemberID
	Handle   string
	Nickname string
	Roles    []RoleID
}

// Directory resolves community members and applies edits to them.
type Directory interface {
	Members(ctx context.Context, community CommunityID) ([]Member, error)
	// SetNickname sets the member's display name; an empty nickname clears it.
	SetNickname(ctx context.Context, community CommunityID, member MemberID, nickname string) error
	GrantRole(ctx context.Context, community CommunityID, member MemberID, role RoleID) error
	RevokeRole(ctx context.Context, community CommunityID, member MemberID, role RoleID) error
}
