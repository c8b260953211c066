package model

import (
	"context"
	"slices"
)

// CommunityID identifies a managed community (a Discord guild).
type CommunityID string

// MemberID identifies a community member.
type MemberID string

// RoleID identifies a role within a community.
type RoleID string

// IgnoreKind selects which ignore set an operation targets.
type IgnoreKind string

const (
	// IgnoreRole excludes every member holding the role.
	IgnoreRole IgnoreKind = "role"
	// IgnoreUser excludes a single member.
	IgnoreUser IgnoreKind = "user"
)

// Valid reports whether k is a known ignore kind.
func (k IgnoreKind) Valid() bool {
	return k == IgnoreRole || k == IgnoreUser
}

// CommunityConfig is the per-community reconciliation configuration.
type CommunityConfig struct {
	ID             CommunityID
	VerifiedRoleID RoleID
	Overrides      map[MemberID]string
	IgnoredRoles   map[RoleID]struct{}
	IgnoredUsers   map[MemberID]struct{}
}

// NewCommunityConfig returns the default configuration: no verified role,
// no overrides, nothing ignored.
func NewCommunityConfig(id CommunityID) CommunityConfig {
	return CommunityConfig{
		ID:           id,
		Overrides:    make(map[MemberID]string),
		IgnoredRoles: make(map[RoleID]struct{}),
		IgnoredUsers: make(map[MemberID]struct{}),
	}
}

// HasVerifiedRole reports whether the community takes part in reconciliation.
func (c CommunityConfig) HasVerifiedRole() bool {
	return c.VerifiedRoleID != ""
}

// Ignores reports whether the member is excluded, either directly or through
// one of its roles.
func (c CommunityConfig) Ignores(member Member) bool {
	if _, ok := c.IgnoredUsers[member.ID]; ok {
		return true
	}
	for _, role := range member.Roles {
		if _, ok := c.IgnoredRoles[role]; ok {
			return true
		}
	}
	return false
}

// Override returns the forced nickname for a member, if any.
func (c CommunityConfig) Override(id MemberID) (string, bool) {
	nick, ok := c.Overrides[id]
	return nick, ok
}

// SortedIgnoredRoles returns the ignored role ids in ascending order.
func (c CommunityConfig) SortedIgnoredRoles() []RoleID {
	out := make([]RoleID, 0, len(c.IgnoredRoles))
	for id := range c.IgnoredRoles {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SortedIgnoredUsers returns the ignored member ids in ascending order.
func (c CommunityConfig) SortedIgnoredUsers() []MemberID {
	out := make([]MemberID, 0, len(c.IgnoredUsers))
	for id := range c.IgnoredUsers {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy that shares no maps with c.
func (c CommunityConfig) Clone() CommunityConfig {
	out := NewCommunityConfig(c.ID)
	out.VerifiedRoleID = c.VerifiedRoleID
	for k, v := range c.Overrides {
		out.Overrides[k] = v
	}
	for k := range c.IgnoredRoles {
		out.IgnoredRoles[k] = struct{}{}
	}
	for k := range c.IgnoredUsers {
		out.IgnoredUsers[k] = struct{}{}
	}
	return out
}

// CommunityStore defines access to per-community configuration.
type CommunityStore interface {
	GetOrCreate(id CommunityID) CommunityConfig
	Configured() []CommunityConfig
	SetVerifiedRole(ctx context.Context, id CommunityID, role RoleID) error
	ClearVerifiedRole(ctx context.Context, id CommunityID) (remaining int, err error)
	AddOverride(ctx context.Context, id CommunityID, member MemberID, nickname string) error
	RemoveOverride(ctx context.Context, id CommunityID, member MemberID) error
	AddIgnore(ctx context.Context, id CommunityID, kind IgnoreKind, target string) error
	RemoveIgnore(ctx context.Context, id CommunityID, kind IgnoreKind, target string) error
}
