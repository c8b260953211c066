package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/dtroode/rostersync/internal/model"
)

const (
	// membersPageSize is the largest page the members endpoint returns.
	membersPageSize = 1000
	// maxNicknameLength is the server-side nickname limit in runes.
	maxNicknameLength = 32
)

var _ model.Directory = (*Directory)(nil)

// Directory resolves guild members and edits them over REST.
type Directory struct {
	api restAPI

	mu     sync.RWMutex
	selfID string
}

func NewDirectory(api restAPI) *Directory {
	return &Directory{api: api}
}

// SetSelf records the bot's own user id; the bot is never listed as a member.
func (d *Directory) SetSelf(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selfID = userID
}

func (d *Directory) self() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selfID
}

// Members pages through the whole guild member list.
func (d *Directory) Members(ctx context.Context, community model.CommunityID) ([]model.Member, error) {
	self := d.self()

	var out []model.Member
	after := ""
	for {
		page, err := d.api.GuildMembers(string(community), after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, newApplyError(model.OpListMembers, community, string(community), err)
		}

		for _, m := range page {
			if m == nil || m.User == nil {
				continue
			}
			if m.User.ID == self {
				continue
			}
			out = append(out, toMember(m))
		}

		if len(page) < membersPageSize {
			return out, nil
		}
		last := page[len(page)-1]
		if last == nil || last.User == nil {
			return out, nil
		}
		after = last.User.ID
	}
}

func (d *Directory) SetNickname(ctx context.Context, community model.CommunityID, member model.MemberID, nickname string) error {
	if runes := []rune(nickname); len(runes) > maxNicknameLength {
		nickname = string(runes[:maxNicknameLength])
	}

	err := d.api.GuildMemberNickname(string(community), string(member), nickname, discordgo.WithContext(ctx))
	if err != nil {
		return newApplyError(model.OpSetNickname, community, string(member), err)
	}
	return nil
}

func (d *Directory) GrantRole(ctx context.Context, community model.CommunityID, member model.MemberID, role model.RoleID) error {
	err := d.api.GuildMemberRoleAdd(string(community), string(member), string(role), discordgo.WithContext(ctx))
	if err != nil {
		return newApplyError(model.OpGrantRole, community, string(member), err)
	}
	return nil
}

func (d *Directory) RevokeRole(ctx context.Context, community model.CommunityID, member model.MemberID, role model.RoleID) error {
	err := d.api.GuildMemberRoleRemove(string(community), string(member), string(role), discordgo.WithContext(ctx))
	if err != nil {
		return newApplyError(model.OpRevokeRole, community, string(member), err)
	}
	return nil
}

func toMember(m *discordgo.Member) model.Member {
	roles := make([]model.RoleID, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, model.RoleID(r))
	}
	return model.Member{
		ID:       model.MemberID(m.User.ID),
		Handle:   handle(m.User),
		Nickname: m.Nick,
		Roles:    roles,
	}
}

// handle renders the user the way the roster records it: name#discriminator
// for legacy accounts, the bare username otherwise.
func handle(u *discordgo.User) string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}
