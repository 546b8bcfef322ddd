// Package discord connects the command router to a Discord gateway session.
package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/keshon/styrobot/internal/command"
	"github.com/keshon/styrobot/internal/plugin"
	"github.com/keshon/styrobot/pkg/retrylimit"
)

// handleTimeout bounds one command, replies included.
const handleTimeout = 2 * time.Minute

// Bot is a Discord bot
type Bot struct {
	dg      *discordgo.Session
	router  *command.Router
	limiter *retrylimit.AdaptiveLimiter
	log     log.FieldLogger
	ctx     context.Context
}

// New creates the session without connecting. sendRate is the starting
// outbound message rate per second.
func New(token string, sendRate float64, logger log.FieldLogger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	r := rate.Limit(sendRate)
	return &Bot{
		dg:      dg,
		limiter: retrylimit.NewAdaptiveLimiter(r, 1, 2*r, 1, 0.5),
		log:     logger.WithField("component", "discord"),
	}, nil
}

// Latency is the gateway heartbeat latency.
func (b *Bot) Latency() time.Duration {
	return b.dg.HeartbeatLatency()
}

// Run connects, routes messages to router until ctx is done and closes the
// session.
func (b *Bot) Run(ctx context.Context, router *command.Router) error {
	b.router = router
	b.ctx = ctx

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	b.log.Info("Shutdown signal received. Cleaning up...")
	return nil
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Infof("Discord bot is running, prefix %q", b.router.Prefix())
}

// onMessageCreate is called when a message is created
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || (s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, handleTimeout)
	defer cancel()

	env := &plugin.Env{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		Reply: func(ctx context.Context, text string) error {
			return b.send(ctx, m.ChannelID, text)
		},
	}

	handled, err := b.router.Handle(ctx, m.Content, env)
	if err != nil {
		b.log.WithError(err).WithField("dispatch_id", env.DispatchID).Error("Error running command")
		if serr := b.send(ctx, m.ChannelID, fmt.Sprintf("Error running command: %v", err)); serr != nil {
			b.log.WithError(serr).Warn("failed to report command error")
		}
		return
	}
	if handled {
		b.log.WithField("dispatch_id", env.DispatchID).Debug("message handled")
	}
}
