package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

const (
	embedColor = 0x5865F2

	// MaxListedEvents bounds the events rendered in one list embed.
	MaxListedEvents = 10

	maxDescriptionRunes = 300
)

// EmbedBuilder renders catalog entries for a given locale and timezone.
type EmbedBuilder struct {
	Translator output.T
	Location   *time.Location
}

func (b EmbedBuilder) t(locale, key string, data map[string]any) string {
	return b.Translator.T(locale, key, data)
}

func (b EmbedBuilder) orUnknown(locale, value string) string {
	if strings.TrimSpace(value) == "" {
		return b.t(locale, "discord.event.unknown", nil)
	}
	return value
}

// EventEmbed shows every public field of one event.
func (b EmbedBuilder) EventEmbed(locale string, event *entities.Event) *discordgo.MessageEmbed {
	date := FormatEventDateTime(event.Date, b.Location)
	return &discordgo.MessageEmbed{
		Title:       event.Name,
		Description: truncate(event.Description, maxDescriptionRunes),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: b.t(locale, "discord.event.organizer", nil), Value: b.orUnknown(locale, event.Organizer), Inline: true},
			{Name: b.t(locale, "discord.event.location", nil), Value: b.orUnknown(locale, event.Location), Inline: true},
			{Name: b.t(locale, "discord.event.date", nil), Value: b.orUnknown(locale, date), Inline: true},
			{Name: b.t(locale, "discord.event.category", nil), Value: b.orUnknown(locale, event.Category), Inline: true},
			{Name: b.t(locale, "discord.event.capacity", nil), Value: strconv.Itoa(event.Capacity), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("#%d", event.ID)},
	}
}

// EventListEmbed lists up to MaxListedEvents events, one field each.
func (b EmbedBuilder) EventListEmbed(locale string, events []entities.Event) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: b.t(locale, "discord.events.title", nil),
		Color: embedColor,
	}
	if len(events) == 0 {
		embed.Description = b.t(locale, "discord.events.empty", nil)
		return embed
	}

	shown := events
	if len(shown) > MaxListedEvents {
		shown = shown[:MaxListedEvents]
	}
	for _, e := range shown {
		parts := []string{}
		if date := FormatEventDateTime(e.Date, b.Location); date != "" {
			parts = append(parts, date)
		}
		if e.Location != "" {
			parts = append(parts, e.Location)
		}
		if e.Category != "" {
			parts = append(parts, e.Category)
		}
		parts = append(parts, fmt.Sprintf("%s: %d", b.t(locale, "discord.event.capacity", nil), e.Capacity))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d · %s", e.ID, e.Name),
			Value: strings.Join(parts, " • "),
		})
	}
	if hidden := len(events) - len(shown); hidden > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: b.t(locale, "discord.events.more", map[string]any{"Count": hidden}),
		}
	}
	return embed
}

func truncate(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max-1]) + "…"
}
