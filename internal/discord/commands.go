package discord

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// DefaultPrefix starts every command.
const DefaultPrefix = "!"

const requiredPermissions = discordgo.PermissionManageNicknames | discordgo.PermissionManageRoles

// Admin is the operator surface the commands drive.
type Admin interface {
	Verify(ctx context.Context, community model.CommunityID, role model.RoleID) error
	Unverify(ctx context.Context, community model.CommunityID) (int, error)
	Config(community model.CommunityID) model.CommunityConfig
	AddOverride(ctx context.Context, community model.CommunityID, member model.MemberID, nickname string) error
	RemoveOverride(ctx context.Context, community model.CommunityID, member model.MemberID) error
	AddIgnore(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error
	RemoveIgnore(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error
	Revoke(ctx context.Context, community model.CommunityID, member model.MemberID) error
	Sync(ctx context.Context) (model.RunReport, error)
	Status() model.SchedulerStatus
}

type commandFunc func(ctx context.Context, m *discordgo.Message, args []string) error

type command struct {
	usage string
	help  string
	run   commandFunc
}

// Commands dispatches prefixed chat messages in guild channels.
type Commands struct {
	api    restAPI
	admin  Admin
	info   model.InfoProvider
	prefix string
	logger *logger.Logger

	table map[string]command
}

func NewCommands(api restAPI, admin Admin, info model.InfoProvider, prefix string, logger *logger.Logger) *Commands {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	c := &Commands{
		api:    api,
		admin:  admin,
		info:   info,
		prefix: prefix,
		logger: logger,
	}
	c.table = map[string]command{
		"verify":       {usage: "verify @role", help: "Set the verified role and start the verification loop.", run: c.verify},
		"unverify":     {usage: "unverify", help: "Stop verifying members of this server.", run: c.unverify},
		"ignore":       {usage: "ignore @user|@role ...", help: "Exclude users or roles from verification.", run: c.ignore},
		"unignore":     {usage: "unignore @user|@role ...", help: "Put users or roles back under verification.", run: c.unignore},
		"list-ignored": {usage: "list-ignored", help: "Show the ignored users and roles.", run: c.listIgnored},
		"override":     {usage: "override @user nickname", help: "Force a member's nickname.", run: c.override},
		"unoverride":   {usage: "unoverride @user", help: "Drop a forced nickname.", run: c.unoverride},
		"revoke":       {usage: "revoke @user", help: "Take the verified role away and ignore the member.", run: c.revoke},
		"sync":         {usage: "sync", help: "Run a verification pass now.", run: c.sync},
		"status":       {usage: "status", help: "Show the verification loop state.", run: c.status},
		"info":         {usage: "info", help: "Show the information message.", run: c.sendInfo},
		"help":         {usage: "help", help: "List the commands.", run: c.help},
	}
	return c
}

// Handle runs the command in m, if any. Messages outside guilds, from bots,
// or from members lacking Manage Nicknames and Manage Roles are ignored.
func (c *Commands) Handle(ctx context.Context, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if !strings.HasPrefix(m.Content, c.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, c.prefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	cmd, ok := c.table[name]
	if !ok {
		return
	}

	// info and help are open to everyone
	if name != "info" && name != "help" {
		allowed, err := c.authorized(ctx, m)
		if err != nil {
			c.logger.Warn("failed to check command permissions", "guild_id", m.GuildID, "user_id", m.Author.ID, "error", err)
			return
		}
		if !allowed {
			c.logger.Info("command rejected, missing permissions", "command", name, "guild_id", m.GuildID, "user_id", m.Author.ID)
			c.reply(ctx, m, "You need the Manage Nicknames and Manage Roles permissions to do that.")
			return
		}
	}

	if err := cmd.run(ctx, m, fields[1:]); err != nil {
		c.logger.Error("command failed", "command", name, "guild_id", m.GuildID, "error", err)
		c.reply(ctx, m, describeError(err))
	}
}

func (c *Commands) authorized(ctx context.Context, m *discordgo.Message) (bool, error) {
	perms, err := c.api.UserChannelPermissions(m.Author.ID, m.ChannelID, discordgo.WithContext(ctx))
	if err != nil {
		return false, err
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&requiredPermissions == requiredPermissions, nil
}

func (c *Commands) verify(ctx context.Context, m *discordgo.Message, _ []string) error {
	if len(m.MentionRoles) == 0 {
		c.reply(ctx, m, "You need to provide a role to grant once verified.")
		return nil
	}
	role := m.MentionRoles[0]

	if err := c.admin.Verify(ctx, model.CommunityID(m.GuildID), model.RoleID(role)); err != nil {
		return err
	}
	c.reply(ctx, m, fmt.Sprintf("Starting verification loop.\nVerified role: %s", roleMention(role)))
	return nil
}

func (c *Commands) unverify(ctx context.Context, m *discordgo.Message, _ []string) error {
	remaining, err := c.admin.Unverify(ctx, model.CommunityID(m.GuildID))
	if err != nil {
		return err
	}

	msg := "Verification disabled for this server."
	if remaining == 0 {
		msg += "\nNo server is verified any more, the verification loop is stopped."
	}
	c.reply(ctx, m, msg)
	return nil
}

func (c *Commands) ignore(ctx context.Context, m *discordgo.Message, _ []string) error {
	return c.changeIgnores(ctx, m, c.admin.AddIgnore, "Ignoring")
}

func (c *Commands) unignore(ctx context.Context, m *discordgo.Message, _ []string) error {
	return c.changeIgnores(ctx, m, c.admin.RemoveIgnore, "No longer ignoring")
}

type ignoreFunc func(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error

func (c *Commands) changeIgnores(ctx context.Context, m *discordgo.Message, apply ignoreFunc, verb string) error {
	community := model.CommunityID(m.GuildID)

	var users, roles []string
	for _, u := range m.Mentions {
		if u == nil {
			continue
		}
		if err := apply(ctx, community, model.IgnoreUser, u.ID); err != nil {
			return err
		}
		users = append(users, userMention(u.ID))
	}
	for _, r := range m.MentionRoles {
		if err := apply(ctx, community, model.IgnoreRole, r); err != nil {
			return err
		}
		roles = append(roles, roleMention(r))
	}

	if len(users) == 0 && len(roles) == 0 {
		c.reply(ctx, m, "Mention the users or roles to change.")
		return nil
	}

	var lines []string
	if len(users) > 0 {
		lines = append(lines, fmt.Sprintf("%s users: %s", verb, prettyList(users)))
	}
	if len(roles) > 0 {
		lines = append(lines, fmt.Sprintf("%s roles: %s", verb, prettyList(roles)))
	}
	c.reply(ctx, m, strings.Join(lines, "\n"))
	return nil
}

func (c *Commands) listIgnored(ctx context.Context, m *discordgo.Message, _ []string) error {
	cfg := c.admin.Config(model.CommunityID(m.GuildID))

	roles := make([]string, 0, len(cfg.IgnoredRoles))
	for _, r := range cfg.SortedIgnoredRoles() {
		roles = append(roles, roleMention(string(r)))
	}
	users := make([]string, 0, len(cfg.IgnoredUsers))
	for _, u := range cfg.SortedIgnoredUsers() {
		users = append(users, userMention(string(u)))
	}

	embed := &discordgo.MessageEmbed{
		Title: "Ignored Users and Roles",
		Color: 0xE67E22,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ignored Roles:", Value: orNone(prettyList(roles))},
			{Name: "Ignored Users:", Value: orNone(prettyList(users))},
		},
	}
	c.replyEmbed(ctx, m, embed)
	return nil
}

func (c *Commands) override(ctx context.Context, m *discordgo.Message, args []string) error {
	if len(m.Mentions) == 0 || m.Mentions[0] == nil {
		c.reply(ctx, m, fmt.Sprintf("Usage: `%soverride @user nickname`", c.prefix))
		return nil
	}
	user := m.Mentions[0].ID

	nickname := strings.TrimSpace(strings.Join(dropMentions(args), " "))
	if nickname == "" {
		c.reply(ctx, m, "You need to provide the nickname to use.")
		return nil
	}

	if err := c.admin.AddOverride(ctx, model.CommunityID(m.GuildID), model.MemberID(user), nickname); err != nil {
		return err
	}
	c.reply(ctx, m, fmt.Sprintf("%s will be named %q.", userMention(user), nickname))
	return nil
}

func (c *Commands) unoverride(ctx context.Context, m *discordgo.Message, _ []string) error {
	if len(m.Mentions) == 0 || m.Mentions[0] == nil {
		c.reply(ctx, m, fmt.Sprintf("Usage: `%sunoverride @user`", c.prefix))
		return nil
	}
	user := m.Mentions[0].ID

	if err := c.admin.RemoveOverride(ctx, model.CommunityID(m.GuildID), model.MemberID(user)); err != nil {
		return err
	}
	c.reply(ctx, m, fmt.Sprintf("%s no longer has a forced nickname.", userMention(user)))
	return nil
}

func (c *Commands) revoke(ctx context.Context, m *discordgo.Message, _ []string) error {
	if len(m.Mentions) == 0 || m.Mentions[0] == nil {
		c.reply(ctx, m, fmt.Sprintf("Usage: `%srevoke @user`", c.prefix))
		return nil
	}
	user := m.Mentions[0].ID

	if err := c.admin.Revoke(ctx, model.CommunityID(m.GuildID), model.MemberID(user)); err != nil {
		return err
	}
	c.reply(ctx, m, fmt.Sprintf("%s is no longer verified and will be ignored.", userMention(user)))
	return nil
}

func (c *Commands) sync(ctx context.Context, m *discordgo.Message, _ []string) error {
	report, err := c.admin.Sync(ctx)
	if err != nil {
		return err
	}

	cr, ok := report.Community(model.CommunityID(m.GuildID))
	if !ok {
		c.reply(ctx, m, fmt.Sprintf("Pass finished, %d roster records read. This server is not verified.", report.Records))
		return nil
	}
	msg := fmt.Sprintf("Pass finished: %d matched, %d updated, %d skipped, %d failed.",
		cr.Matched, cr.Updated, cr.Skipped, cr.Failed)
	if cr.Err != nil {
		msg += "\nCould not list the members of this server."
	}
	c.reply(ctx, m, msg)
	return nil
}

func (c *Commands) status(ctx context.Context, m *discordgo.Message, _ []string) error {
	st := c.admin.Status()
	cfg := c.admin.Config(model.CommunityID(m.GuildID))

	state := "stopped"
	if st.Running {
		state = "running"
	}
	lastFetch := "never"
	if st.LastFetch != nil {
		lastFetch = st.LastFetch.UTC().Format(time.RFC1123)
	}
	role := "none"
	if cfg.HasVerifiedRole() {
		role = roleMention(string(cfg.VerifiedRoleID))
	}

	embed := &discordgo.MessageEmbed{
		Title: "Verification Status",
		Color: 0xF1C40F,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Loop", Value: state, Inline: true},
			{Name: "Interval", Value: st.Interval.String(), Inline: true},
			{Name: "Last fetch", Value: lastFetch, Inline: true},
			{Name: "Verified role", Value: role, Inline: true},
			{Name: "Overrides", Value: fmt.Sprint(len(cfg.Overrides)), Inline: true},
		},
	}
	if st.LastReport != nil {
		if cr, ok := st.LastReport.Community(cfg.ID); ok {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Last pass",
				Value: fmt.Sprintf("%d matched, %d updated, %d skipped, %d failed", cr.Matched, cr.Updated, cr.Skipped, cr.Failed),
			})
		}
	}
	c.replyEmbed(ctx, m, embed)
	return nil
}

func (c *Commands) sendInfo(ctx context.Context, m *discordgo.Message, _ []string) error {
	info, err := c.info.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to load info: %w", err)
	}
	c.replyEmbed(ctx, m, infoEmbed(info))
	return nil
}

func (c *Commands) help(ctx context.Context, m *discordgo.Message, _ []string) error {
	names := make([]string, 0, len(c.table))
	for name := range c.table {
		names = append(names, name)
	}
	sort.Strings(names)

	embed := &discordgo.MessageEmbed{Title: "Help", Color: 0xF1C40F}
	for _, name := range names {
		cmd := c.table[name]
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("`%s%s`", c.prefix, cmd.usage),
			Value: cmd.help,
		})
	}
	c.replyEmbed(ctx, m, embed)
	return nil
}

func (c *Commands) reply(ctx context.Context, m *discordgo.Message, content string) {
	if _, err := c.api.ChannelMessageSend(m.ChannelID, content, discordgo.WithContext(ctx)); err != nil {
		c.logger.Warn("failed to send reply", "channel_id", m.ChannelID, "error", err)
	}
}

func (c *Commands) replyEmbed(ctx context.Context, m *discordgo.Message, embed *discordgo.MessageEmbed) {
	if _, err := c.api.ChannelMessageSendEmbed(m.ChannelID, embed, discordgo.WithContext(ctx)); err != nil {
		c.logger.Warn("failed to send reply", "channel_id", m.ChannelID, "error", err)
	}
}

func describeError(err error) string {
	var fetchErr *model.FetchError
	switch {
	case errors.Is(err, model.ErrPassInFlight):
		return "A verification pass is already running, try again in a moment."
	case errors.Is(err, model.ErrNotConfigured):
		return "No verified role is set. Use the verify command first."
	case errors.Is(err, model.ErrInvalidArgument):
		return "That request is not valid: " + err.Error()
	case errors.As(err, &fetchErr):
		return "Could not read the roster, the next pass will try again."
	default:
		return "Something went wrong, check the logs."
	}
}

func userMention(id string) string {
	return "<@" + id + ">"
}

func roleMention(id string) string {
	return "<@&" + id + ">"
}

// dropMentions removes user, role and channel mention tokens.
func dropMentions(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "<@") || strings.HasPrefix(a, "<#") {
			if strings.HasSuffix(a, ">") {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// prettyList joins items as "a", "a and b" or "a, b and c".
func prettyList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
