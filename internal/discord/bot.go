package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// Intents are the gateway intents the bot subscribes to.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentMessageContent

// handlerTimeout bounds a single gateway event handler.
const handlerTimeout = 30 * time.Second

// Resumer restarts the reconciliation loop from persisted state.
type Resumer interface {
	Resume(ctx context.Context) error
}

// Bot owns the gateway session and routes its events.
type Bot struct {
	session   *discordgo.Session
	directory *Directory
	welcome   *Welcome
	commands  *Commands
	resumer   Resumer
	logger    *logger.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a bot session for token.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = Intents
	return session, nil
}

// NewBot routes the session's events. directory must wrap the same session.
func NewBot(session *discordgo.Session, directory *Directory, admin Admin, info model.InfoProvider, resumer Resumer, prefix string, logger *logger.Logger) *Bot {
	b := &Bot{
		session:   session,
		directory: directory,
		welcome:   NewWelcome(session, info, logger),
		commands:  NewCommands(session, admin, info, prefix, logger),
		resumer:   resumer,
		logger:    logger,
		ctx:       context.Background(),
		cancel:    func() {},
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onResumed)
	session.AddHandler(b.onMemberAdd)
	session.AddHandler(b.onMessageCreate)
	return b
}

// Open connects to the gateway.
func (b *Bot) Open(ctx context.Context) error {
	b.mu.Lock()
	b.ctx, b.cancel = context.WithCancel(context.WithoutCancel(ctx))
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	return nil
}

// Close disconnects from the gateway and cancels in-flight handlers.
func (b *Bot) Close() error {
	b.mu.Lock()
	b.cancel()
	b.mu.Unlock()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord gateway: %w", err)
	}
	return nil
}

func (b *Bot) handlerContext() (context.Context, context.CancelFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return context.WithTimeout(b.ctx, handlerTimeout)
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		b.directory.SetSelf(r.User.ID)
		b.logger.Info("discord gateway ready", "user", r.User.Username, "guilds", len(r.Guilds))
	}
	b.resume()
}

func (b *Bot) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	b.logger.Info("discord gateway resumed")
	b.resume()
}

func (b *Bot) resume() {
	ctx, cancel := b.handlerContext()
	defer cancel()

	if err := b.resumer.Resume(ctx); err != nil {
		b.logger.Error("failed to resume reconciliation loop", "error", err)
	}
}

func (b *Bot) onMemberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	ctx, cancel := b.handlerContext()
	defer cancel()
	b.welcome.onMemberAdd(ctx, m)
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil {
		return
	}
	ctx, cancel := b.handlerContext()
	defer cancel()
	b.commands.Handle(ctx, m.Message)
}
