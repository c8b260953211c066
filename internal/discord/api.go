// Package discord adapts a Discord bot session to the reconciliation core:
// the member directory, the welcome message, the chat commands and the
// gateway lifecycle.
package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/dtroode/rostersync/internal/model"
)

// restAPI is the part of *discordgo.Session this package calls.
type restAPI interface {
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	GuildMemberNickname(guildID, userID, nickname string, options ...discordgo.RequestOption) error
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ restAPI = (*discordgo.Session)(nil)

func newApplyError(op model.ApplyOperation, community model.CommunityID, target string, err error) *model.ApplyError {
	applyErr := &model.ApplyError{
		Op:          op,
		CommunityID: community,
		TargetID:    target,
		Err:         err,
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		applyErr.StatusCode = restErr.Response.StatusCode
	}
	return applyErr
}

func infoEmbed(info model.Info) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       info.Title,
		Description: info.Description,
		Color:       info.Color,
	}
	if info.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: info.Footer}
	}
	if info.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: info.ThumbnailURL}
	}
	return embed
}
