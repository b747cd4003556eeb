package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

func ephemeral(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func respond(s *discordgo.Session, i *discordgo.Interaction, data *discordgo.InteractionResponseData, logger zerolog.Logger) {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("discord: interaction response failed")
	}
}
