package discord

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/bwmarrin/discordgo"
)

type fakeAPI struct {
	mu sync.Mutex

	members     []*discordgo.Member
	pageCalls   []string
	membersErr  error
	nickErr     map[string]error
	roleErr     error
	permissions int64
	permErr     error
	dmErr       error

	nicknames map[string]string
	added     []string
	removed   []string
	sent      []string
	embeds    []*discordgo.MessageEmbed
	dmTargets []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nickErr:   map[string]error{},
		nicknames: map[string]string{},
	}
}

func (f *fakeAPI) GuildMembers(guildID string, after string, limit int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls = append(f.pageCalls, after)
	if f.membersErr != nil {
		return nil, f.membersErr
	}

	start := 0
	if after != "" {
		for i, m := range f.members {
			if m.User.ID == after {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(f.members) {
		end = len(f.members)
	}
	return f.members[start:end], nil
}

func (f *fakeAPI) GuildMemberNickname(guildID, userID, nickname string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.nickErr[userID]; err != nil {
		return err
	}
	f.nicknames[userID] = nickname
	return nil
}

func (f *fakeAPI) GuildMemberRoleAdd(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return f.roleErr
	}
	f.added = append(f.added, userID+":"+roleID)
	return nil
}

func (f *fakeAPI) GuildMemberRoleRemove(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return f.roleErr
	}
	f.removed = append(f.removed, userID+":"+roleID)
	return nil
}

func (f *fakeAPI) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	f.dmTargets = append(f.dmTargets, recipientID)
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeAPI) UserChannelPermissions(userID, channelID string, _ ...discordgo.RequestOption) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permissions, f.permErr
}

func (f *fakeAPI) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeAPI) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func restError(status int) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: status, Status: fmt.Sprintf("%d", status)},
	}
}

func guildMember(id, username, discriminator string, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:  &discordgo.User{ID: id, Username: username, Discriminator: discriminator},
		Roles: roles,
	}
}
