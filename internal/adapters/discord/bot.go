package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	guildID string
	handler *Handler
	logger  zerolog.Logger
}

// NewBot opens no connection yet; Start does.
func NewBot(token, guildID string, handler *Handler, logger zerolog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		session: s,
		guildID: guildID,
		handler: handler,
		logger:  logger.With().Str("component", "discord").Logger(),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type == discordgo.InteractionApplicationCommand {
		b.handler.HandleCommand(s, i)
	}
}

// Start registers the slash commands and serves interactions until ctx is
// done. Commands are removed again on shutdown.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	appID := b.session.State.User.ID
	registered := make([]*discordgo.ApplicationCommand, 0, len(Commands()))
	for _, cmd := range Commands() {
		created, err := b.session.ApplicationCommandCreate(appID, b.guildID, cmd)
		if err != nil {
			b.logger.Warn().Err(err).Str("command", cmd.Name).Msg("command registration failed")
			continue
		}
		registered = append(registered, created)
	}

	b.logger.Info().Int("commands", len(registered)).Msg("bot online")
	<-ctx.Done()

	for _, cmd := range registered {
		if err := b.session.ApplicationCommandDelete(appID, b.guildID, cmd.ID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmd.Name).Msg("command removal failed")
		}
	}
	return nil
}
