package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"eventreg/internal/domain/entities"
	pkgdiscord "eventreg/pkg/discord"
)

const (
	commandEvents = "events"
	commandEvent  = "event"

	commandTimeout = 3 * time.Second
)

// Commands lists the slash commands registered by the bot.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandEvents,
			Description: "List upcoming events",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French: "Lister les événements",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "search", Description: "Text found in the name or description"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "category", Description: "Exact category"},
				{Type: discordgo.ApplicationCommandOptionString, Name: "location", Description: "Exact location"},
			},
		},
		{
			Name:        commandEvent,
			Description: "Show one event",
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.French: "Afficher un événement",
			},
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Event id", Required: true, MinValue: floatPtr(1)},
			},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

// HandleCommand dispatches an application command interaction.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	locale := string(i.Locale)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var response *discordgo.InteractionResponseData
	switch data.Name {
	case commandEvents:
		response = h.eventsResponse(ctx, locale, filterFromOptions(data.Options))
	case commandEvent:
		var id int64
		if opt := findOption(data.Options, "id"); opt != nil {
			id = opt.IntValue()
		}
		response = h.eventResponse(ctx, locale, id)
	default:
		return
	}
	respond(s, i.Interaction, response, h.logger)
}

func (h *Handler) eventsResponse(ctx context.Context, locale string, filter entities.EventFilter) *discordgo.InteractionResponseData {
	events, err := h.catalog.List(ctx, filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("discord: list events failed")
		return ephemeral(pkgdiscord.DomainErrorMessage(h.translator, locale, err))
	}
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{h.embeds.EventListEmbed(locale, events)},
	}
}

func (h *Handler) eventResponse(ctx context.Context, locale string, id int64) *discordgo.InteractionResponseData {
	event, err := h.catalog.Get(ctx, id)
	if err != nil {
		h.logger.Debug().Err(err).Int64("event_id", id).Msg("discord: get event rejected")
		return ephemeral(pkgdiscord.DomainErrorMessage(h.translator, locale, err))
	}
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{h.embeds.EventEmbed(locale, event)},
	}
}

func filterFromOptions(options []*discordgo.ApplicationCommandInteractionDataOption) entities.EventFilter {
	var filter entities.EventFilter
	if opt := findOption(options, "search"); opt != nil {
		filter.Search = opt.StringValue()
	}
	if opt := findOption(options, "category"); opt != nil {
		filter.Category = opt.StringValue()
	}
	if opt := findOption(options, "location"); opt != nil {
		filter.Location = opt.StringValue()
	}
	return filter
}

func findOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}
