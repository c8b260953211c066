package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// Welcome sends the info payload to members as a direct message.
type Welcome struct {
	api    restAPI
	info   model.InfoProvider
	logger *logger.Logger
}

func NewWelcome(api restAPI, info model.InfoProvider, logger *logger.Logger) *Welcome {
	return &Welcome{
		api:    api,
		info:   info,
		logger: logger,
	}
}

// Send direct-messages the info payload to userID.
func (w *Welcome) Send(ctx context.Context, userID string) error {
	info, err := w.info.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to load info: %w", err)
	}

	channel, err := w.api.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open direct message channel: %w", err)
	}

	if _, err := w.api.ChannelMessageSendEmbed(channel.ID, infoEmbed(info), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}
	return nil
}

func (w *Welcome) onMemberAdd(ctx context.Context, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}

	if err := w.Send(ctx, m.User.ID); err != nil {
		w.logger.Warn("failed to welcome member", "guild_id", m.GuildID, "user_id", m.User.ID, "error", err)
		return
	}
	w.logger.Debug("welcome message sent", "guild_id", m.GuildID, "user_id", m.User.ID)
}
